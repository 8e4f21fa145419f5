package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/artifactsmith/internal/generator"
)

// WriteReport renders report in the given format ("text" or "json").
func WriteReport(w io.Writer, report *generator.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "", "text":
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, report *generator.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ARTIFACT\tOUTCOME\tSTATE\tPATH")
	for _, e := range report.Entries {
		state := e.State
		if state == "" {
			state = "-"
		}
		if e.Hotspot {
			state += "*"
		}
		if e.Degraded {
			state += " (degraded)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Outcome, state, e.Path)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, e := range report.Entries {
		if e.Error != "" {
			fmt.Fprintf(w, "  %s: [%s] %s\n", e.ID, e.Class, e.Error)
		}
		for _, warn := range e.Warnings {
			fmt.Fprintf(w, "  %s: warning: %s\n", e.ID, warn)
		}
	}

	_, err := fmt.Fprintln(w, summary(report))
	return err
}

// summary reads like "3 artifacts: 2 created, 1 unchanged; 1 hotspot".
func summary(report *generator.Report) string {
	counts := make(map[generator.Outcome]int)
	for _, e := range report.Entries {
		counts[e.Outcome]++
	}
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		parts = append(parts, fmt.Sprintf("%d %s", counts[generator.Outcome(o)], o))
	}

	line := fmt.Sprintf("%d artifacts", len(report.Entries))
	if len(parts) > 0 {
		line += ": " + strings.Join(parts, ", ")
	}
	if n := len(report.Hotspots()); n > 0 {
		line += fmt.Sprintf("; %d hotspot(s) to review", n)
	}
	if report.DryRun {
		line += " (dry run)"
	}
	return line
}
