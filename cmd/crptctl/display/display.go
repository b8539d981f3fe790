// Package display provides output formatting and display functions for crptctl.
//
// Every function writes either a text/tabwriter table or indented JSON to the
// given writer, depending on the --output flag. Display code never talks to the
// registry or the gateway; handlers pass it finished results.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/concave-dev/crpt/cmd/crptctl/config"
	"github.com/concave-dev/crpt/internal/api/handlers"
	"github.com/concave-dev/crpt/internal/crpt"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// Submission is one finished submit attempt, numbered from 1
type Submission struct {
	Index  int
	Result crpt.Result
}

// SubmissionView is the JSON form of a Submission
type SubmissionView struct {
	Index      int       `json:"index"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code,omitempty"`
	Body       string    `json:"body,omitempty"`
	Started    time.Time `json:"started,omitempty"`
	Duration   string    `json:"duration"`
	Signed     bool      `json:"signed"`
	Error      string    `json:"error,omitempty"`
}

// ToView converts a submission into its JSON form
func ToView(s Submission) SubmissionView {
	return SubmissionView{
		Index:      s.Index,
		Outcome:    string(s.Result.Outcome),
		StatusCode: s.Result.StatusCode,
		Body:       string(s.Result.Body),
		Started:    s.Result.Started,
		Duration:   s.Result.Duration.String(),
		Signed:     s.Result.Signed,
		Error:      s.Result.ErrorMessage(),
	}
}

// DisplaySubmissions prints submissions ordered by start time. The OFFSET
// column is the start relative to the first request that was sent, which makes
// the throttle spacing visible.
func DisplaySubmissions(w io.Writer, submissions []Submission) {
	if len(submissions) == 0 {
		if config.Global.Output == "json" {
			fmt.Fprintln(w, "[]")
		} else {
			fmt.Fprintln(w, "No submissions")
		}
		return
	}

	sorted := append([]Submission(nil), submissions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Result.Started, sorted[j].Result.Started
		// Submissions that never sent a request sort last
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		if a.Equal(b) {
			return sorted[i].Index < sorted[j].Index
		}
		return a.Before(b)
	})

	if config.Global.Output == "json" {
		writeJSON(w, lo.Map(sorted, func(s Submission, _ int) SubmissionView { return ToView(s) }))
		return
	}

	var first time.Time
	for _, s := range sorted {
		if !s.Result.Started.IsZero() {
			first = s.Result.Started
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if config.Global.Verbose {
		fmt.Fprintln(tw, "#\tOUTCOME\tSTATUS\tOFFSET\tDURATION\tBODY\tSIGNED\tERROR")
	} else {
		fmt.Fprintln(tw, "#\tOUTCOME\tSTATUS\tOFFSET\tDURATION\tBODY")
	}

	for _, s := range sorted {
		r := s.Result
		status := "-"
		if r.StatusCode != 0 {
			status = fmt.Sprintf("%d", r.StatusCode)
		}
		offset := "-"
		if !r.Started.IsZero() {
			offset = "+" + r.Started.Sub(first).Round(time.Millisecond).String()
		}
		body := humanize.Bytes(uint64(len(r.Body)))

		if config.Global.Verbose {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
				s.Index, r.Outcome, status, offset, r.Duration.Round(time.Millisecond), body, r.Signed, r.ErrorMessage())
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				s.Index, r.Outcome, status, offset, r.Duration.Round(time.Millisecond), body)
		}
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%s\n", Summary(submissions))
}

// Summary counts submissions by outcome, e.g. "3 submitted: 2 success, 1 http_error"
func Summary(submissions []Submission) string {
	counts := lo.CountValuesBy(submissions, func(s Submission) crpt.Outcome { return s.Result.Outcome })

	outcomes := lo.Keys(counts)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })

	parts := lo.Map(outcomes, func(o crpt.Outcome, _ int) string {
		return fmt.Sprintf("%d %s", counts[o], o)
	})
	return fmt.Sprintf("%d submitted: %s", len(submissions), strings.Join(parts, ", "))
}

// DisplayDocument prints a document as indented JSON
func DisplayDocument(w io.Writer, doc any) {
	writeJSON(w, doc)
}

// DisplayStatus prints gateway health and queue statistics
func DisplayStatus(w io.Writer, health *handlers.HealthResponse, queue *handlers.QueueResponse) {
	if config.Global.Output == "json" {
		writeJSON(w, struct {
			Health *handlers.HealthResponse `json:"health"`
			Queue  *handlers.QueueResponse  `json:"queue"`
		}{health, queue})
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Status:\t%s\n", health.Status)
	fmt.Fprintf(tw, "Version:\t%s\n", health.Version)
	fmt.Fprintf(tw, "Uptime:\t%s\n", health.Uptime)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Queue:\t%d/%d (%d workers)\n", queue.Queue.Depth, queue.Queue.Capacity, queue.Queue.Workers)
	fmt.Fprintf(tw, "Processed:\t%s\n", humanize.Comma(int64(queue.Queue.Processed)))
	fmt.Fprintf(tw, "Rejected:\t%s\n", humanize.Comma(int64(queue.Queue.Rejected)))
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Min Interval:\t%s\n", queue.Gate.MinInterval)
	fmt.Fprintf(tw, "In Flight:\t%t\n", queue.Gate.InFlight)
	fmt.Fprintf(tw, "Waiting:\t%d\n", queue.Gate.Waiting)
	fmt.Fprintf(tw, "Completed:\t%s\n", humanize.Comma(int64(queue.Gate.Completed)))
	if config.Global.Verbose {
		fmt.Fprintf(tw, "Last Wait:\t%s\n", queue.Gate.LastWait)
		fmt.Fprintf(tw, "Last Hold:\t%s\n", queue.Gate.LastHold)
	}
}

func writeJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(w, "Error encoding JSON output")
	}
}
