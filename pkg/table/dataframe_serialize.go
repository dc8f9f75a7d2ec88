package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"tabpipe/pkg/pipeline"
)

// ToRecords returns one map[string]any per row, in source order, containing
// only declared columns (missing fields become pipeline.Absent).
func (d *DataFrame) ToRecords() ([]map[string]any, error) {
	pairs, err := pipeline.Drain(d.it)
	if err != nil {
		return nil, err
	}
	columns := d.cols()
	out := make([]map[string]any, len(pairs))
	for i, p := range pairs {
		rec, _ := asRecord(p.Value)
		row := make(map[string]any, len(columns))
		for _, c := range columns {
			if v, ok := rec[c]; ok {
				row[c] = v
			} else {
				row[c] = pipeline.Absent
			}
		}
		out[i] = row
	}
	return out, nil
}

// ToRows returns array-of-arrays aligned to the declared column order.
func (d *DataFrame) ToRows() ([][]any, error) {
	records, err := d.ToRecords()
	if err != nil {
		return nil, err
	}
	columns := d.cols()
	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = rec[c]
		}
		rows[i] = row
	}
	return rows, nil
}

func jsonSafe(v any) any {
	if pipeline.IsAbsent(v) {
		return nil
	}
	return v
}

// ToJSON serializes the frame as a JSON array of records holding the
// declared columns. Object keys are written in name order (encoding/json
// sorts map keys), not in the frame's column order.
func (d *DataFrame) ToJSON() ([]byte, error) {
	records, err := d.ToRecords()
	if err != nil {
		return nil, err
	}
	docs := make([]map[string]any, len(records))
	for i, rec := range records {
		doc := make(map[string]any, len(rec))
		for k, v := range rec {
			doc[k] = jsonSafe(v)
		}
		docs[i] = doc
	}
	return json.Marshal(docs)
}

// ToCSV serializes the frame as RFC 4180 CSV with a header row of column
// names.
func (d *DataFrame) ToCSV() ([]byte, error) {
	rows, err := d.ToRows()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(d.cols()); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if pipeline.IsAbsent(v) {
				record[i] = ""
				continue
			}
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
