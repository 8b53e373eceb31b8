package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/printx/pxologs/internal/artifact"
	"github.com/printx/pxologs/internal/config"
	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/logservice/mock"
	"github.com/printx/pxologs/internal/status"
	"github.com/printx/pxologs/internal/target"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	qaDocumentEvent = "/aws/lambda/Pxo001UsOhQaLambdaFunctionDocumentEventJar01"
	prodJobPost     = "/aws/lambda/Pxo001UsOrProdLambdaFunctionJobPostJar01"
	// 2024-03-05T14:07:09Z
	ts = int64(1709647629000)
)

func qaOpts() config.Options {
	return config.Options{Env: "Qa", Profile: "default", Location: time.UTC}
}

func streams(names ...string) []logservice.LogStream {
	out := make([]logservice.LogStream, len(names))
	for i, n := range names {
		out[i] = logservice.LogStream{Name: n, LastEventTime: time.UnixMilli(ts - int64(i)*1000)}
	}
	return out
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	return string(data)
}

func TestRunner_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 2).Return(streams("S1", "S2"), nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S1").Return([]logservice.LogEvent{
		{Message: "\nnewest first\n", Timestamp: ts},
		{Message: "newest second\n", Timestamp: ts + 1000},
	}, nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S2").Return([]logservice.LogEvent{
		{Message: "older\n", Timestamp: ts - 60000},
	}, nil)

	memFs := afero.NewMemMapFs()
	st, recs := status.NewRecording()
	r := NewRunner(client, artifact.NewWriter(memFs, ""), st, qaOpts())

	report := r.Run(context.Background(), CommandGet, target.ParseAll([]string{"DocumentEvent#2"}))

	require.Len(t, report.Outcomes, 1)
	out := report.Outcomes[0]
	assert.NoError(t, out.Err)
	assert.False(t, report.Failed())
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, qaDocumentEvent, out.Group)
	assert.Equal(t, []string{"Qa-DocumentEvent-1.log", "Qa-DocumentEvent-2.log"}, out.Artifacts)

	assert.Equal(t, "3/5/2024 2:07:09 PM - newest first\n3/5/2024 2:07:10 PM - newest second\n",
		readFile(t, memFs, "Qa-DocumentEvent-1.log"))
	assert.Equal(t, "3/5/2024 2:06:09 PM - older\n", readFile(t, memFs, "Qa-DocumentEvent-2.log"))
	assert.Empty(t, recs["error"].Lines())
}

func TestRunner_Get_FewerStreamsThanRequested(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 3).Return(streams("S1", "S2"), nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, gomock.Any()).Return(nil, nil).Times(2)

	memFs := afero.NewMemMapFs()
	st, _ := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(memFs, ""), st, qaOpts()).
		Run(context.Background(), CommandGet, []target.Target{{FunctionName: "DocumentEvent", Count: 3}})

	out := report.Outcomes[0]
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"Qa-DocumentEvent-1.log", "Qa-DocumentEvent-2.log"}, out.Artifacts)

	exists, err := afero.Exists(memFs, "Qa-DocumentEvent-3.log")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "", readFile(t, memFs, "Qa-DocumentEvent-1.log"))
}

func TestRunner_Get_EmptyGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 1).Return(nil, nil)

	st, recs := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(afero.NewMemMapFs(), ""), st, qaOpts()).
		Run(context.Background(), CommandGet, []target.Target{{FunctionName: "DocumentEvent", Count: 1}})

	out := report.Outcomes[0]
	assert.NoError(t, out.Err)
	assert.Equal(t, StateDone, out.State)
	assert.Empty(t, out.Artifacts)
	assert.Equal(t, []string{"No logs found for " + qaDocumentEvent}, recs["warn"].Lines())
}

func TestRunner_Get_EnumerationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 1).Return(nil, logservice.NotFound(qaDocumentEvent))

	st, recs := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(afero.NewMemMapFs(), ""), st, qaOpts()).
		Run(context.Background(), CommandGet, []target.Target{{FunctionName: "DocumentEvent", Count: 1}})

	out := report.Outcomes[0]
	assert.ErrorIs(t, out.Err, logservice.ErrGroupNotFound)
	assert.Equal(t, StateEnumerationFailed, out.State)
	assert.True(t, report.Failed())
	assert.Equal(t,
		[]string{"get error: DocumentEvent#1: log group not found: " + qaDocumentEvent},
		recs["error"].Lines())
}

func TestRunner_Get_StreamFailureDoesNotStopSiblings(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	fetchErr := &logservice.TransportError{Op: "get-log-events", Err: errors.New("throttled")}
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 3).Return(streams("S1", "S2", "S3"), nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S1").Return([]logservice.LogEvent{{Message: "one\n", Timestamp: ts}}, nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S2").Return(nil, fetchErr)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S3").Return([]logservice.LogEvent{{Message: "three\n", Timestamp: ts}}, nil)

	memFs := afero.NewMemMapFs()
	st, recs := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(memFs, ""), st, qaOpts()).
		Run(context.Background(), CommandGet, []target.Target{{FunctionName: "DocumentEvent", Count: 3}})

	out := report.Outcomes[0]
	assert.Equal(t, StateFetchOrWriteFailed, out.State)
	var te *logservice.TransportError
	assert.ErrorAs(t, out.Err, &te)
	assert.Equal(t, []string{"Qa-DocumentEvent-1.log", "Qa-DocumentEvent-3.log"}, out.Artifacts)
	assert.Equal(t,
		[]string{"get error: DocumentEvent#3: stream S2: get-log-events: throttled"},
		recs["error"].Lines())
}

func TestRunner_Get_WriteFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 1).Return(streams("S1"), nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S1").Return(nil, nil)

	st, _ := status.NewRecording()
	writer := artifact.NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "")
	report := NewRunner(client, writer, st, qaOpts()).
		Run(context.Background(), CommandGet, []target.Target{{FunctionName: "DocumentEvent", Count: 1}})

	out := report.Outcomes[0]
	assert.Equal(t, StateFetchOrWriteFailed, out.State)
	var we *artifact.WriteError
	assert.ErrorAs(t, out.Err, &we)
	assert.Empty(t, out.Artifacts)
}

func TestRunner_Get_TargetsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	jobPost := "/aws/lambda/Pxo001UsOhQaLambdaFunctionJobPostJar01"
	client.EXPECT().ListStreams(gomock.Any(), jobPost, 1).Return(nil, &logservice.TransportError{Op: "describe-log-streams", Err: assert.AnError})
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 1).Return(streams("S1"), nil)
	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S1").Return(nil, nil)

	memFs := afero.NewMemMapFs()
	st, _ := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(memFs, ""), st, qaOpts()).
		Run(context.Background(), CommandGet, target.ParseAll([]string{"JobPost", "DocumentEvent"}))

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, "JobPost", report.Outcomes[0].Target.FunctionName)
	assert.Equal(t, StateEnumerationFailed, report.Outcomes[0].State)
	assert.Equal(t, "DocumentEvent", report.Outcomes[1].Target.FunctionName)
	assert.Equal(t, StateDone, report.Outcomes[1].State)
	assert.True(t, report.Failed())
}

func TestRunner_EveryFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	jobPost := "/aws/lambda/Pxo001UsOhQaLambdaFunctionJobPostJar01"
	client.EXPECT().ListStreams(gomock.Any(), jobPost, 1).Return(nil, logservice.NotFound(jobPost))
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 1).Return(nil, &logservice.TransportError{Op: "describe-log-streams", Err: assert.AnError})

	st, recs := status.NewRecording()
	report := NewRunner(client, artifact.NewWriter(afero.NewMemMapFs(), ""), st, qaOpts()).
		Run(context.Background(), CommandGet, target.ParseAll([]string{"JobPost", "DocumentEvent"}))

	require.Len(t, report.Outcomes, 2)
	assert.ErrorIs(t, report.Outcomes[0].Err, logservice.ErrGroupNotFound)
	assert.ErrorIs(t, report.Outcomes[1].Err, assert.AnError)
	assert.Len(t, recs["error"].Lines(), 2)
}

func TestRunner_Purge(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ListStreams(gomock.Any(), prodJobPost, 0).Return(streams("S1", "S2", "S3"), nil)
	client.EXPECT().DeleteStream(gomock.Any(), prodJobPost, "S1").Return(nil)
	client.EXPECT().DeleteStream(gomock.Any(), prodJobPost, "S2").Return(&logservice.TransportError{Op: "delete-log-stream", Err: assert.AnError})
	client.EXPECT().DeleteStream(gomock.Any(), prodJobPost, "S3").Return(nil)

	opts := config.Options{Env: "Prod", Profile: "default"}
	st, recs := status.NewRecording()
	report := NewRunner(client, nil, st, opts).
		Run(context.Background(), CommandPurge, target.ParseAll([]string{"JobPost"}))

	out := report.Outcomes[0]
	assert.NoError(t, out.Err)
	assert.False(t, report.Failed())
	assert.Equal(t, StateDone, out.State)
	assert.Equal(t, prodJobPost, out.Group)
	if d := cmp.Diff(PurgeResult{Deleted: 2, Failed: 1}, out.Purge); d != "" {
		t.Error("purge result mismatch (-want +got):\n", d)
	}
	assert.Equal(t, 3, out.Streams)

	errs := recs["error"].Lines()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "purge error: "+prodJobPost+" -- S2")
}

func TestRunner_Purge_EnumerationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	client.EXPECT().ListStreams(gomock.Any(), prodJobPost, 0).Return(nil, logservice.NotFound(prodJobPost))

	st, recs := status.NewRecording()
	report := NewRunner(client, nil, st, config.Options{Env: "Prod"}).
		Run(context.Background(), CommandPurge, target.ParseAll([]string{"JobPost"}))

	out := report.Outcomes[0]
	assert.Equal(t, StatePurgeFailed, out.State)
	assert.ErrorIs(t, out.Err, logservice.ErrGroupNotFound)
	assert.Equal(t, []string{"purge error: JobPost#1: log group not found: " + prodJobPost}, recs["error"].Lines())
}

func TestRunner_UnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	st, _ := status.NewRecording()
	report := NewRunner(client, nil, st, qaOpts()).
		Run(context.Background(), Command("tail"), target.ParseAll([]string{"JobPost"}))

	assert.EqualError(t, report.Outcomes[0].Err, "unknown command: tail")
}

func TestPurge_WaitsForEveryDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	const k = 5
	names := []string{"a", "b", "c", "d", "e"}
	client.EXPECT().ListStreams(gomock.Any(), prodJobPost, 0).Return(streams(names...), nil)

	var (
		completed atomic.Int32
		mu        sync.Mutex
		deleted   []string
	)
	client.EXPECT().DeleteStream(gomock.Any(), prodJobPost, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, stream string) error {
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			deleted = append(deleted, stream)
			mu.Unlock()
			completed.Add(1)
			if stream == "b" {
				return assert.AnError
			}
			return nil
		}).Times(k)

	st, _ := status.NewRecording()
	res, err := Purge(context.Background(), client, prodJobPost, st)
	require.NoError(t, err)

	assert.Equal(t, int32(k), completed.Load())
	assert.Equal(t, PurgeResult{Deleted: 4, Failed: 1}, res)
	sort.Strings(deleted)
	assert.Equal(t, names, deleted)
}

func TestEnumerate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 2).Return(streams("S1", "S2"), nil)
	got, err := Enumerate(context.Background(), client, qaDocumentEvent, 2)
	require.NoError(t, err)
	assert.Equal(t, streams("S1", "S2"), got)

	transport := &logservice.TransportError{Op: "describe-log-streams", Err: assert.AnError}
	client.EXPECT().ListStreams(gomock.Any(), qaDocumentEvent, 0).Return(nil, transport)
	_, err = Enumerate(context.Background(), client, qaDocumentEvent, 0)
	assert.Same(t, transport, err)
}

func TestFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().GetEvents(gomock.Any(), qaDocumentEvent, "S1").Return([]logservice.LogEvent{
		{Message: "m1\n", Timestamp: ts},
		{Message: "m2\n", Timestamp: ts + 1000},
	}, nil)

	got, err := Fetch(context.Background(), client, qaDocumentEvent, "S1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "3/5/2024 2:07:09 PM - m1\n3/5/2024 2:07:10 PM - m2\n", got)
}
