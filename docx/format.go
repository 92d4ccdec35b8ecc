package docx

import (
	"fmt"
	"strings"
)

// FormattedText renders the document as plain text with inline markup
// describing styles, alignment, and run formatting. The format is
// line-oriented and stable so clients can parse it.
func (d *Document) FormattedText() string {
	var sb strings.Builder

	styles := d.Styles()
	for _, p := range d.Paragraphs() {
		styleName := "Normal"
		if id := p.StyleID(); id != "" {
			if info, ok := styles.Lookup(id); ok {
				styleName = info.Name
			} else {
				styleName = id
			}
		}
		align := strings.ToUpper(p.Alignment())

		fmt.Fprintf(&sb, "[PARAGRAPH style=%q align=%q]\n", styleName, align)
		for _, r := range p.Runs {
			sb.WriteString(formatRun(r))
		}
		sb.WriteString("\n[/PARAGRAPH]\n")
	}

	for _, t := range d.Tables() {
		fmt.Fprintf(&sb, "[TABLE rows=%d cols=%d]\n", len(t.Rows), t.ColumnCount())
		for _, row := range t.Rows {
			sb.WriteString("[ROW]\n")
			for _, cell := range row.Cells {
				sb.WriteString("[CELL]")
				for _, p := range cell.Paragraphs {
					for _, r := range p.Runs {
						switch {
						case r.Bold():
							sb.WriteString("[bold]" + r.TextValue() + "[/bold]")
						case r.Italic():
							sb.WriteString("[italic]" + r.TextValue() + "[/italic]")
						default:
							sb.WriteString(r.TextValue())
						}
					}
					sb.WriteString("\n")
				}
				sb.WriteString("[/CELL]\n")
			}
			sb.WriteString("[/ROW]\n")
		}
		sb.WriteString("[/TABLE]\n")
	}

	return sb.String()
}

// formatRun wraps a run's text in a [bold italic size=12.0pt ...]...[/]
// tag when the run carries any direct formatting.
func formatRun(r *Run) string {
	var parts []string
	if r.Bold() {
		parts = append(parts, "bold")
	}
	if r.Italic() {
		parts = append(parts, "italic")
	}
	if r.Underlined() {
		parts = append(parts, "underline")
	}
	if size := r.SizePt(); size > 0 {
		parts = append(parts, fmt.Sprintf("size=%.1fpt", size))
	}
	if name := r.FontName(); name != "" {
		parts = append(parts, "font="+name)
	}
	if hex := r.ColorHex(); hex != "" {
		parts = append(parts, "color="+hex)
	}
	if len(parts) == 0 {
		return r.TextValue()
	}
	return "[" + strings.Join(parts, " ") + "]" + r.TextValue() + "[/]"
}

// RangeFormat is the formatting applied by FormatRange. Nil pointer
// fields are left unchanged; empty strings and zero sizes likewise.
type RangeFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     string // name or hex
	SizePt    int
	Font      string
}

// FormatRange applies formatting to characters [start,end) of the
// paragraph at index. Positions count characters, not bytes, so
// multibyte text never gets split mid-rune. The paragraph is rebuilt as
// up to three runs (before, target, after), so formatting previously
// spread across runs is flattened. Returns the text that was formatted.
func (d *Document) FormatRange(index, start, end int, f RangeFormat) (string, error) {
	paras := d.Paragraphs()
	if index < 0 || index >= len(paras) {
		return "", fmt.Errorf("%w: paragraph %d of %d", ErrBadIndex, index, len(paras))
	}
	p := paras[index]
	text := []rune(p.Text())
	if start < 0 || end > len(text) || start >= end {
		return "", fmt.Errorf("%w: paragraph has %d characters", ErrBadRange, len(text))
	}
	target := string(text[start:end])

	p.Runs = nil
	if start > 0 {
		p.AddRun(string(text[:start]))
	}
	run := p.AddRun(target)
	if f.Bold != nil {
		run.SetBold(*f.Bold)
	}
	if f.Italic != nil {
		run.SetItalic(*f.Italic)
	}
	if f.Underline != nil {
		run.SetUnderline(*f.Underline)
	}
	if f.Color != "" {
		run.SetColor(ResolveColor(f.Color))
	}
	if f.SizePt > 0 {
		run.SetSizePt(f.SizePt)
	}
	if f.Font != "" {
		run.SetFont(f.Font)
	}
	if end < len(text) {
		p.AddRun(string(text[end:]))
	}
	return target, nil
}

// ReplaceAll replaces old with new in every body and table cell
// paragraph, run by run, and returns the number of runs changed.
// Occurrences split across run boundaries are not matched.
func (d *Document) ReplaceAll(old, new string) int {
	count := 0
	replace := func(p *Paragraph) {
		if !strings.Contains(p.Text(), old) {
			return
		}
		for _, r := range p.Runs {
			if text := r.TextValue(); strings.Contains(text, old) {
				r.SetText(strings.ReplaceAll(text, old, new))
				count++
			}
		}
	}

	for _, p := range d.Paragraphs() {
		replace(p)
	}
	for _, t := range d.Tables() {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				for _, p := range cell.Paragraphs {
					replace(p)
				}
			}
		}
	}
	return count
}
