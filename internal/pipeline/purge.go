package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/printx/pxologs/internal/logservice"
	"github.com/printx/pxologs/internal/status"
	"github.com/printx/pxologs/internal/trace"
	"go.opentelemetry.io/otel/attribute"
)

// PurgeResult counts the outcome of every delete issued for a group.
type PurgeResult struct {
	Deleted int
	Failed  int
}

// Purge deletes every stream of group, one concurrent delete per stream.
// It returns once every delete has completed. A failed delete is reported and counted
// but never stops the others and never fails the purge; only a failure to list the streams does.
func Purge(ctx context.Context, client logservice.Client, group string, st *status.Status) (PurgeResult, error) {
	ctx, span := trace.NewSpan(ctx, "purge streams", attribute.String("group", group))
	defer span.End()

	streams, err := Enumerate(ctx, client, group, 0)
	if err != nil {
		return PurgeResult{}, trace.SpanError(span, err)
	}

	var (
		g       multierror.Group
		deleted atomic.Int64
		failed  atomic.Int64
	)
	for _, s := range streams {
		g.Go(func() error {
			st.Info.Println(fmt.Sprintf("Purging events for %s -- %s", group, s.Name))
			if err := client.DeleteStream(ctx, group, s.Name); err != nil {
				failed.Add(1)
				st.Error.Println(fmt.Sprintf("purge error: %s -- %s: %s", group, s.Name, err))
				return err
			}
			deleted.Add(1)
			return nil
		})
	}

	if err := g.Wait().ErrorOrNil(); err != nil {
		// best effort, the failures were reported individually
		span.RecordError(err)
	}

	res := PurgeResult{Deleted: int(deleted.Load()), Failed: int(failed.Load())}
	span.SetAttributes(attribute.Int("deleted", res.Deleted), attribute.Int("failed", res.Failed))
	return res, nil
}
