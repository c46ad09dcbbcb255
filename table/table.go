// Package table renders aligned text tables whose cells may carry ANSI colour codes.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// FormatFunc colours a cell value; it must not change the visible text
type FormatFunc func(value string) string

// Align selects the side a cell is padded on
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// ColumnSpec defines a column's properties
type ColumnSpec struct {
	Header     string
	BlankValue string     // Value to show for empty cells (default: "-")
	FormatFunc FormatFunc // Optional colouring, skipped when colour is disabled
	MinWidth   int
	Align      Align
}

// Table collects rows and writes them with every column padded to its widest cell
type Table struct {
	columns []ColumnSpec
	rows    [][]string
	widths  []int
	color   bool
}

// New creates a table with the given columns. Colour is enabled by default.
func New(cols ...ColumnSpec) *Table {
	t := &Table{
		columns: cols,
		widths:  make([]int, len(cols)),
		color:   true,
	}

	for i := range t.columns {
		if t.columns[i].BlankValue == "" {
			t.columns[i].BlankValue = "-"
		}
		t.widths[i] = max(t.columns[i].MinWidth, visibleLength(t.columns[i].Header))
	}

	return t
}

// SetColor turns FormatFunc colouring on or off
func (t *Table) SetColor(enabled bool) {
	t.color = enabled
}

// AddRow adds a row. Missing or empty cells show the column's BlankValue; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		val := ""
		if i < len(cells) {
			val = cells[i]
		}
		if val == "" {
			val = t.columns[i].BlankValue
		}
		row[i] = val
		t.widths[i] = max(t.widths[i], visibleLength(val))
	}
	t.rows = append(t.rows, row)
}

// Render writes the header, an underline and every row to w
func (t *Table) Render(w io.Writer) error {
	headers := make([]string, len(t.columns))
	underline := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = pad(col.Header, t.widths[i], col.Align)
		underline[i] = strings.Repeat("-", t.widths[i])
	}
	if err := writeLine(w, headers); err != nil {
		return err
	}
	if err := writeLine(w, underline); err != nil {
		return err
	}

	for _, row := range t.rows {
		formatted := make([]string, len(row))
		for i, val := range row {
			col := t.columns[i]
			display := val
			if t.color && col.FormatFunc != nil && val != col.BlankValue {
				display = col.FormatFunc(val)
			}
			formatted[i] = pad(display, t.widths[i], col.Align)
		}
		if err := writeLine(w, formatted); err != nil {
			return err
		}
	}

	return nil
}

func writeLine(w io.Writer, cells []string) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

func pad(s string, width int, align Align) string {
	n := visibleLength(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if align == AlignRight {
		return fill + s
	}
	return s + fill
}

// visibleLength counts runes outside ANSI escape sequences
func visibleLength(s string) int {
	length := 0
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			length++
		}
	}
	return length
}

// Paint returns a FormatFunc wrapping the value in a foreground colour
func Paint(code coloransi.ColorCode) FormatFunc {
	return func(value string) string {
		return coloransi.Foreground(code, value)
	}
}
