package application

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AI-guru11/Mo7/internal/invoice/domain"
)

const (
	pageWidth    = 78
	linesPerPage = 52
)

// Writer turns a layout document into a fixed-width, paginated text
// artifact. It carries no layout logic of its own.
type Writer struct{}

// WriteTo streams the paginated rendition of doc.
func (Writer) WriteTo(w io.Writer, doc domain.Document) error {
	var lines []string
	for _, b := range doc.Blocks {
		lines = append(lines, blockLines(b)...)
		lines = append(lines, "")
	}

	page := 1
	for i, line := range lines {
		if i > 0 && i%linesPerPage == 0 {
			if _, err := fmt.Fprintf(w, "%s\n\f", pageFooter(page)); err != nil {
				return err
			}
			page++
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", pageFooter(page))
	return err
}

// Save writes the artifact under dir with the given filename and returns
// the full path.
func (wr Writer) Save(doc domain.Document, dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := wr.WriteTo(f, doc); err != nil {
		return "", err
	}
	return path, nil
}

func blockLines(b domain.Block) []string {
	switch b.Kind {
	case domain.KindHeader:
		out := []string{strings.Repeat("=", pageWidth), center(b.Title)}
		out = append(out, b.Lines...)
		return append(out, strings.Repeat("=", pageWidth))
	case domain.KindParty:
		out := []string{b.Title}
		for _, l := range b.Lines {
			out = append(out, "  "+l)
		}
		return out
	case domain.KindTable:
		return tableLines(b)
	case domain.KindBadge:
		return []string{fmt.Sprintf("[%s]  %s", b.Label, b.Value)}
	case domain.KindTotal:
		line := b.Label + " " + b.Value
		pad := pageWidth - len([]rune(line))
		if pad < 0 {
			pad = 0
		}
		return []string{strings.Repeat("-", pageWidth), strings.Repeat(" ", pad) + line}
	case domain.KindNote:
		return b.Lines
	default:
		return nil
	}
}

func tableLines(b domain.Block) []string {
	widths := make([]int, len(b.Columns))
	for i, c := range b.Columns {
		widths[i] = len([]rune(c))
	}
	for _, row := range b.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	out := []string{formatRow(b.Columns, widths)}
	out = append(out, strings.Repeat("-", pageWidth))
	for _, row := range b.Rows {
		out = append(out, formatRow(row, widths))
	}
	return out
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := 0
		if i < len(widths) {
			pad = widths[i] - len([]rune(cell))
		}
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func center(s string) string {
	pad := (pageWidth - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func pageFooter(page int) string {
	return center(fmt.Sprintf("- Page %d -", page))
}
