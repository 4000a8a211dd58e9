package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable("#", "bucket", "pixels")
	table.AlignRight(0, 2)
	table.AddRow("1", "e00000", "1200")
	table.AddRow("10", "00e0e0", "7")

	want := strings.Join([]string{
		" #  bucket  pixels",
		"--  ------  ------",
		" 1  e00000    1200",
		"10  00e0e0       7",
		"",
	}, "\n")

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableAddRowNormalisesWidth(t *testing.T) {
	table := NewTable("a", "b")
	table.AddRow("x")
	table.AddRow("1", "2", "3")

	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("short row = %q, want padded to 2 columns", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("long row = %q, want truncated to 2 columns", table.rows[1])
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}
	if got := NewTable("only").Render(); got != "only\n----\n" {
		t.Errorf("Render() with no rows = %q", got)
	}
}
