package main

import (
	"fmt"
	"io"
	"strings"

	"tabpipe/pkg/pipeline"
	"tabpipe/pkg/table"
)

// printTable renders a DataFrame as an ASCII table: header, separators, one
// line per row, a trailing row count.
func printTable(out io.Writer, df *table.DataFrame) error {
	columns := df.ColumnNames()
	rows, err := df.ToRows()
	if err != nil {
		return err
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, v := range row {
			if s := formatValue(v); len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	printSeparator(out, widths)
	printRow(out, columns, widths)
	printSeparator(out, widths)
	for _, row := range rows {
		strs := make([]string, len(row))
		for i, v := range row {
			strs[i] = formatValue(v)
		}
		printRow(out, strs, widths)
	}
	printSeparator(out, widths)
	fmt.Fprintf(out, "%d row(s)\n", len(rows))
	return nil
}

func printSeparator(out io.Writer, widths []int) {
	fmt.Fprint(out, "+")
	for _, w := range widths {
		fmt.Fprint(out, strings.Repeat("-", w+2))
		fmt.Fprint(out, "+")
	}
	fmt.Fprintln(out)
}

func printRow(out io.Writer, values []string, widths []int) {
	fmt.Fprint(out, "|")
	for i, v := range values {
		fmt.Fprintf(out, " %-*s |", widths[i], v)
	}
	fmt.Fprintln(out)
}

func formatValue(v any) string {
	if pipeline.IsAbsent(v) {
		return ""
	}
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
