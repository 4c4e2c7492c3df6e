package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// PrintTable 按显示宽度对齐输出表格（汉字占两列），footers 为空时不输出合计行
func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	widen(colWidths, headers)
	for _, row := range rows {
		widen(colWidths, row)
	}
	widen(colWidths, footers)

	printRow(w, colWidths, headers)
	for _, row := range rows {
		printRow(w, colWidths, row)
	}
	if len(footers) > 0 {
		printRow(w, colWidths, footers)
	}
}

func widen(colWidths []int, cells []string) {
	for i, cell := range cells {
		if i < len(colWidths) && runewidth.StringWidth(cell) > colWidths[i] {
			colWidths[i] = runewidth.StringWidth(cell)
		}
	}
}

func printRow(w io.Writer, colWidths []int, cells []string) {
	for i, cell := range cells {
		if i >= len(colWidths) {
			break
		}
		fmt.Fprintf(w, "%s\t", runewidth.FillRight(cell, colWidths[i]))
	}
	fmt.Fprintln(w)
}
