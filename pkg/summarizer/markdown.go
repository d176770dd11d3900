package summarizer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l10n.T("framestrip Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", l10n.T("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	// Input
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Input"))
	writeTableHeader(&b)
	writeRow(&b, l10n.T("File"), s.Input.Path)
	writeRow(&b, l10n.T("Kind"), s.Input.Kind)
	writeRow(&b, l10n.T("Mode"), modeLabel(s.Input.Headless))
	if s.Input.Kind == "video" {
		writeRow(&b, l10n.T("Codec"), orNA(s.Input.Codec))
		writeRow(&b, l10n.T("Frame size"), fmt.Sprintf("%dx%d", s.Input.Width, s.Input.Height))
		writeRow(&b, l10n.T("Frames in container"), countOrNA(s.Input.FrameCount))
		if s.Input.FPS > 0 {
			writeRow(&b, l10n.T("Frame rate"), fmt.Sprintf("%.2f fps", s.Input.FPS))
		} else {
			writeRow(&b, l10n.T("Frame rate"), "N/A")
		}
	}
	b.WriteString("\n")

	// Sequence
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Column Sequence"))
	writeTableHeader(&b)
	writeRow(&b, l10n.T("Columns"), fmt.Sprintf("%d", s.Sequence.Columns))
	writeRow(&b, l10n.T("Column size"), fmt.Sprintf("%dx%d", s.Sequence.ColumnWidth, s.Sequence.Height))
	writeRow(&b, l10n.T("Full scale"), yesNo(s.Sequence.FullScale))
	writeRow(&b, l10n.T("Range"), s.Sequence.Range)
	if s.Input.Kind == "video" && !s.Sequence.FullScale {
		writeRow(&b, l10n.T("Reduction"), s.Sequence.Reduction)
	}
	b.WriteString("\n")

	// Parameters
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Parameters"))
	fmt.Fprintf(&b, "| | %s | %s |\n", l10n.T("Width"), l10n.T("Step"))
	b.WriteString("|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %.3f | %.3f |\n", l10n.T("Initial"), s.Params.InitialWidth, s.Params.InitialStep)
	fmt.Fprintf(&b, "| %s | %.3f | %.3f |\n", l10n.T("Final"), s.Params.FinalWidth, s.Params.FinalStep)
	b.WriteString("\n")

	// Exports
	fmt.Fprintf(&b, "## %s\n\n", l10n.T("Exports"))
	if len(s.Exports) == 0 {
		fmt.Fprintf(&b, "%s\n", l10n.T("Nothing was exported."))
	}
	for i, path := range s.Exports {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, path)
	}

	return b.String()
}

func writeTableHeader(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", l10n.T("Item"), l10n.T("Value"))
	b.WriteString("|---|---|\n")
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func modeLabel(headless bool) string {
	if headless {
		return l10n.T("headless")
	}
	return l10n.T("interactive")
}

func yesNo(v bool) string {
	if v {
		return l10n.T("yes")
	}
	return l10n.T("no")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func countOrNA(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

var _ Formatter = (*MarkdownFormatter)(nil)
