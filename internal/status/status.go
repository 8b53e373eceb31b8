// Package status reports progress and failures to the console.
package status

import "sync"

// Status groups the printers used to report progress.
// Printers must be safe for concurrent use, targets report from their own goroutines.
type Status struct {
	Info    Printer
	Success Printer
	Warn    Printer
	Error   Printer
	Debug   Printer
}

type Printer interface {
	Println(string)
}

// Recorder is a Printer that keeps every line, useful for tests.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) Println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, s)
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// NewRecording returns a Status where every printer records into its own Recorder.
func NewRecording() (*Status, map[string]*Recorder) {
	recs := map[string]*Recorder{
		"info":    {},
		"success": {},
		"warn":    {},
		"error":   {},
		"debug":   {},
	}
	return &Status{
		Info:    recs["info"],
		Success: recs["success"],
		Warn:    recs["warn"],
		Error:   recs["error"],
		Debug:   recs["debug"],
	}, recs
}
