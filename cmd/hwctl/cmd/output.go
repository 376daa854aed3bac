package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/healthwatch/internal/api/client"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printEventsTable(w io.Writer, events []domain.Event) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCREATED\tSEVERITY\tTYPE\tTITLE\tUSER\n")
	for i := range events {
		e := &events[i]
		user := "-"
		if e.UserID != nil {
			user = *e.UserID
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.CreatedAt.Local().Format(timeLayout),
			e.Severity,
			e.Type,
			truncate(e.Title, 40),
			user,
		)
	}
	return tw.finish()
}

func printEventStats(w io.Writer, s *apiclient.EventStats) error {
	tw := newTabWriter(w)
	tw.writef("SEVERITY\tCOUNT\n")
	for _, sev := range orderedSeverities(s.Counts) {
		tw.writef("%s\t%d\n", sev, s.Counts[sev])
	}
	tw.writef("TOTAL (%dh)\t%d\n", s.Hours, s.Total)
	return tw.finish()
}

// orderedSeverities lists the severities in counts from least to most
// severe, followed by any the client does not know, alphabetically.
func orderedSeverities(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func rank(sev string) int {
	if s, ok := domain.ParseSeverity(sev); ok {
		return s.Rank()
	}
	return 1 << 10
}

func printStatus(w io.Writer, st *apiclient.MonitoringStatus) error {
	tw := newTabWriter(w)
	tw.writef("Running:\t%v\n", st.Running)
	tw.writef("Next Check:\t%s\n", formatTime(st.NextCheck))
	tw.writef("Next Cleanup:\t%s\n", formatTime(st.NextCleanup))
	tw.writef("Check Interval:\t%s\n", st.CheckInterval)
	tw.writef("Cleanup Interval:\t%s\n", st.CleanupInterval)
	tw.writef("Retention:\t%d days\n", st.RetentionDays)
	return tw.finish()
}

func printRulesTable(w io.Writer, rules []domain.AlertRule) error {
	tw := newTabWriter(w)
	tw.writef("ID\tEVENT TYPE\tNAME\tTHRESHOLD\tENABLED\n")
	for i := range rules {
		tw.writef("%s\t%s\t%s\t%.0f\t%v\n",
			rules[i].ID,
			rules[i].EventType,
			rules[i].Name,
			rules[i].Threshold,
			rules[i].Enabled,
		)
	}
	return tw.finish()
}

// printResult prints an admin result and turns an unsuccessful one into an
// error so the process exits non-zero.
func printResult(w io.Writer, res *apiclient.Result) error {
	if !res.Success {
		return errors.New(res.Message)
	}
	_, err := fmt.Fprintln(w, res.Message)
	return err
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
