// Package observability provides formatted CLI output, structured progress
// logging and OpenTelemetry setup.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreReport outputs the score, the section breakdown and the keyword lists.
func (p *Printer) PrintScoreReport(resp *types.ScoreResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:   %.2f / 100\n", resp.ATSScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience:  %6.2f%%\n", resp.Breakdown.Experience))
	sb.WriteString(fmt.Sprintf("Skills:      %6.2f%%\n", resp.Breakdown.Skills))
	sb.WriteString(fmt.Sprintf("Education:   %6.2f%%\n", resp.Breakdown.Education))
	sb.WriteString(fmt.Sprintf("Bonus:       +%d\n", resp.Breakdown.Bonus))
	sb.WriteString("\n")
	writeList(&sb, "Matched", resp.Keywords.Matched)
	sb.WriteString("\n")
	writeList(&sb, "Missing", resp.Keywords.Missing)

	p.printBox("ATS Score Report", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeyphrases outputs the ranked keyphrases of a JD.
func (p *Printer) PrintKeyphrases(keyphrases []string) {
	var sb strings.Builder
	if len(keyphrases) == 0 {
		sb.WriteString("(none)")
	}
	for i, k := range keyphrases {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, k))
		if i < len(keyphrases)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("JD Keyphrases", sb.String())
}

// PrintStage outputs a one-line progress update.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%-10s] %s (%s)\n", event.Stage, event.Message, event.Duration.Round(time.Microsecond))
}

func writeList(sb *strings.Builder, label string, items []string) {
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(items)))
	if len(items) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
