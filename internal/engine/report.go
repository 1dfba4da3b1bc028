package engine

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Status string

const (
	StatusSuccess          Status = "SUCCESS"
	StatusEmptySkippedData Status = "EMPTY_SKIPPED_DATA"
	StatusDDLFailed        Status = "DDL_FAILED"
	StatusCreateFailed     Status = "CREATE_FAILED"
	StatusCopyFailed       Status = "COPY_FAILED"
)

// failureKinds fixes the order failures are listed in the summary.
var failureKinds = []Status{StatusDDLFailed, StatusCreateFailed, StatusCopyFailed}

func (s Status) Failed() bool {
	return s == StatusDDLFailed || s == StatusCreateFailed || s == StatusCopyFailed
}

// SyncResult is written once per table per run.
type SyncResult struct {
	Table      string
	Status     Status
	RowsCopied int64
	Error      string
	DDL        string // rendered target DDL, empty if conversion failed
	Duration   time.Duration
}

// Report aggregates the results of one run in processing order.
type Report struct {
	Results []SyncResult
	Started time.Time
	Elapsed time.Duration
}

func NewReport() *Report {
	return &Report{Started: time.Now()}
}

func (r *Report) Add(res SyncResult) {
	r.Results = append(r.Results, res)
}

func (r *Report) Finish() {
	r.Elapsed = time.Since(r.Started)
}

func (r *Report) Total() int {
	return len(r.Results)
}

func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Status.Failed() {
			n++
		}
	}
	return n
}

// Failed groups failed table names by failure kind.
func (r *Report) Failed() map[Status][]string {
	out := make(map[Status][]string)
	for _, res := range r.Results {
		if res.Status.Failed() {
			out[res.Status] = append(out[res.Status], res.Table)
		}
	}
	return out
}

func (r *Report) FailedCount() int {
	return r.Total() - r.Succeeded()
}

func (r *Report) RowsCopied() int64 {
	var n int64
	for _, res := range r.Results {
		n += res.RowsCopied
	}
	return n
}

// StatusLine formats one table result for the per-table status stream.
func StatusLine(i, total int, res SyncResult) string {
	icon := "✓"
	if res.Status.Failed() {
		icon = "!"
	}
	line := fmt.Sprintf("[%s] [%02d/%02d] %-24s : %d rows - %s", icon, i, total, res.Table, res.RowsCopied, res.Status)
	if res.Error != "" {
		line += "\n    └ Error: " + res.Error
	}
	return line
}

// Print writes the per-table lines and the aggregate summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "\n📊 Summary Report:")
	for i, res := range r.Results {
		fmt.Fprintln(w, StatusLine(i+1, r.Total(), res))
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Tables: %d  Succeeded: %d  Failed: %d\n", r.Total(), r.Succeeded(), r.FailedCount())

	failed := r.Failed()
	for _, kind := range failureKinds {
		if names := failed[kind]; len(names) > 0 {
			fmt.Fprintf(w, "  %s: %s\n", kind, strings.Join(names, ", "))
		}
	}
	fmt.Fprintf(w, "Total Rows Copied: %d\n", r.RowsCopied())
	fmt.Fprintf(w, "Time Elapsed: %s\n", r.Elapsed.Round(time.Millisecond))
}
