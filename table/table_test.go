package table

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAlignsColumns(t *testing.T) {
	tbl := New(
		ColumnSpec{Header: "PID", Align: AlignRight},
		ColumnSpec{Header: "Name", MinWidth: 6},
	)
	tbl.AddRow("9999", "notepad2.exe")
	tbl.AddRow("4", "")
	tbl.AddRow("612")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))

	want := "" +
		" PID  Name\n" +
		"----  ------------\n" +
		"9999  notepad2.exe\n" +
		"   4  -\n" +
		" 612  -\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderColorDoesNotChangeWidths(t *testing.T) {
	tbl := New(
		ColumnSpec{Header: "Name", FormatFunc: Paint(coloransi.Red)},
		ColumnSpec{Header: "X"},
	)
	tbl.AddRow("abc", "1")
	tbl.AddRow("", "2")

	var colored bytes.Buffer
	require.NoError(t, tbl.Render(&colored))
	assert.Contains(t, colored.String(), "\033[31mabc")
	assert.NotContains(t, colored.String(), "\033[31m-")

	tbl.SetColor(false)
	var plain bytes.Buffer
	require.NoError(t, tbl.Render(&plain))
	assert.Equal(t, "Name  X\n----  -\nabc   1\n-     2\n", plain.String())
}

func TestAddRowDropsExtraCells(t *testing.T) {
	tbl := New(ColumnSpec{Header: "A"})
	tbl.AddRow("1", "2", "3")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, "A\n-\n1\n", buf.String())
}

func TestVisibleLength(t *testing.T) {
	assert.Equal(t, 3, visibleLength("abc"))
	assert.Equal(t, 3, visibleLength("\033[31mabc\033[0m"))
	assert.Equal(t, 4, visibleLength("\033[38;2;255;140;0mпуск\033[0m"))
	assert.Equal(t, 0, visibleLength(""))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRenderPropagatesWriteErrors(t *testing.T) {
	tbl := New(ColumnSpec{Header: "A"})
	assert.Error(t, tbl.Render(failingWriter{}))
}
