package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// EchoLimit is the number of runes of input echoed next to a prediction.
const EchoLimit = 80

// FormatPrediction renders one prediction as
// "[predict] <code> :: <name> :: <text>" with the text cut to EchoLimit runes.
func FormatPrediction(p model.Prediction) string {
	return fmt.Sprintf("[predict] %d :: %s :: %s", int(p.Label), p.Name(), Truncate(p.Text, EchoLimit))
}

// Truncate shortens s to limit runes, appending "..." when anything was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// ReadTexts reads one text per line, trimming and skipping blank lines.
func ReadTexts(r io.Reader) ([]string, error) {
	var texts []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return texts, nil
}

// RenderSummary renders the outcome of dataset preparation.
func RenderSummary(s model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows read:          %d\n", s.TotalRead)
	fmt.Fprintf(&b, "Unmapped category:  %d\n", s.Unmapped)
	fmt.Fprintf(&b, "Too short:          %d\n", s.TooShort)
	fmt.Fprintf(&b, "Kept:               %d (train %d / test %d)\n", s.TotalKept, s.Train, s.Test)

	codes := make([]string, 0, len(s.ClassCounts))
	for code := range s.ClassCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(&b, "\n  %s %-60s %d", code, s.LabelMapping[code], s.ClassCounts[code])
	}

	return RenderBox(ChartIcon+" Dataset", b.String())
}

// RenderRuns renders recorded training runs as a table.
func RenderRuns(runs []model.TrainingRun) string {
	if len(runs) == 0 {
		return FormatInfo("No training runs recorded yet")
	}

	header := TableHeaderStyle.Render(fmt.Sprintf("%-36s  %-19s  %-12s  %8s", "RUN", "STARTED", "BEST", "F1_MACRO"))
	lines := []string{header}
	for _, run := range runs {
		lines = append(lines, fmt.Sprintf("%-36s  %-19s  %-12s  %8.4f",
			run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.BestName, run.BestMacroF1))
		for _, c := range run.Candidates {
			lines = append(lines, SubtleStyle.Render(fmt.Sprintf("    %-12s accuracy %.4f  f1_macro %.4f  %s",
				c.Name, c.Metrics.Accuracy, c.Metrics.MacroF1, c.Duration.Round(1e6))))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
