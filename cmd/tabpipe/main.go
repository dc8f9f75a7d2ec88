// Command tabpipe is a small demonstration consumer of the core pipeline
// engine: it builds a DataFrame from an in-memory record set, chains a few
// operators, and prints the result as a table and as CSV. It owns none of
// the engine's logic; every operation used here is a plain call into
// tabpipe/pkg/table.
package main

import (
	"fmt"
	"os"

	"tabpipe/pkg/table"
)

func sampleRecords() []map[string]any {
	return []map[string]any{
		{"city": "Boston", "country": "USA", "population": 675647.0},
		{"city": "Toronto", "country": "Canada", "population": 2794356.0},
		{"city": "Vancouver", "country": "Canada", "population": 662248.0},
		{"city": "Chicago", "country": "USA", "population": 2746388.0},
	}
}

func run(out, errOut *os.File) error {
	df, err := table.NewDataFrame(table.DataFrameOptions{
		ColumnNames: []string{"city", "country", "population"},
		Records:     sampleRecords(),
	})
	if err != nil {
		return fmt.Errorf("building frame: %w", err)
	}

	big, err := df.Where(func(record map[string]any, index any) bool {
		pop, _ := record["population"].(float64)
		return pop > 1_000_000
	}).OrderByDescending("population")
	if err != nil {
		return fmt.Errorf("sorting frame: %w", err)
	}

	fmt.Fprintln(out, "Cities over one million:")
	if err := printTable(out, big); err != nil {
		return err
	}

	grouped := df.GetSeries("country").GroupBy(func(value, index any) any { return value })
	groupPairs, err := grouped.ToPairs()
	if err != nil {
		return fmt.Errorf("grouping: %w", err)
	}
	fmt.Fprintln(out, "\nCountries represented:")
	for _, p := range groupPairs {
		fmt.Fprintf(out, "  %v\n", p.Index)
	}

	csv, err := df.ToCSV()
	if err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	fmt.Fprintln(out, "\nCSV:")
	out.Write(csv)

	return nil
}

func main() {
	if err := run(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "tabpipe: %v\n", err)
		os.Exit(1)
	}
}
