package table

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpipe/pkg/pipeline"
)

func sampleFrame(t *testing.T) *DataFrame {
	t.Helper()
	df, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"city", "country", "population"},
		Records: []map[string]any{
			{"city": "Boston", "country": "USA", "population": 675647.0},
			{"city": "Toronto", "country": "Canada", "population": 2794356.0},
			{"city": "Vancouver", "country": "Canada", "population": 662248.0},
		},
	})
	require.NoError(t, err)
	return df
}

func TestDataFrameColumnNamesAuthoritative(t *testing.T) {
	df := sampleFrame(t)
	assert.Equal(t, []string{"city", "country", "population"}, df.ColumnNames())
}

func TestDataFrameGetSeriesAndHasExpect(t *testing.T) {
	df := sampleFrame(t)
	assert.True(t, df.HasSeries("city"))
	assert.False(t, df.HasSeries("nope"))
	require.Error(t, df.ExpectSeries("nope"))
	assert.True(t, errors.Is(df.ExpectSeries("nope"), pipeline.ErrUnknownColumn))

	cities, err := df.GetSeries("city").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, cities)
}

func TestDataFrameMissingFieldSerializesAsAbsent(t *testing.T) {
	df, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"a", "b"},
		Records:     []map[string]any{{"a": 1}},
	})
	require.NoError(t, err)
	records, err := df.ToRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, pipeline.IsAbsent(records[0]["b"]))
}

func TestDataFrameConsiderAllRowsUnionsFieldNames(t *testing.T) {
	rows := []map[string]any{{"a": 1}, {"b": 2}}
	onlyFirst, err := NewDataFrame(DataFrameOptions{Records: rows})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, onlyFirst.ColumnNames())

	allRows, err := NewDataFrame(DataFrameOptions{Records: rows, ConsiderAllRows: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, allRows.ColumnNames())
}

func TestDataFrameSetSeriesPositional(t *testing.T) {
	df := sampleFrame(t)
	updated, err := df.SetSeries("rank", []any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "country", "population", "rank"}, updated.ColumnNames())
	ranks, err := updated.GetSeries("rank").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, ranks)
}

func TestDataFrameDropKeepRenameColumns(t *testing.T) {
	df := sampleFrame(t)
	dropped := df.DropSeries([]string{"population"})
	assert.Equal(t, []string{"city", "country"}, dropped.ColumnNames())

	kept := df.KeepSeries([]string{"population", "city"})
	assert.Equal(t, []string{"city", "population"}, kept.ColumnNames())

	renamed := df.RenameSeries(map[string]string{"city": "town"})
	assert.Equal(t, []string{"town", "country", "population"}, renamed.ColumnNames())
	vals, err := renamed.GetSeries("town").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, vals)
}

func TestDataFrameBringToFrontBack(t *testing.T) {
	df := sampleFrame(t)
	front := df.BringToFront([]string{"population"})
	assert.Equal(t, []string{"population", "city", "country"}, front.ColumnNames())
	back := df.BringToBack([]string{"city"})
	assert.Equal(t, []string{"country", "population", "city"}, back.ColumnNames())
}

// Pivot widens distinct key values into columns while preserving row indexes.
func TestPivotScenario(t *testing.T) {
	df, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"k", "v"},
		Records: []map[string]any{
			{"k": "A", "v": 1},
			{"k": "B", "v": 2},
			{"k": "A", "v": 3},
		},
	})
	require.NoError(t, err)
	pivoted, err := df.Pivot("k", "v")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, pivoted.ColumnNames())

	records, err := pivoted.ToRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0]["A"])
	assert.True(t, pipeline.IsAbsent(records[0]["B"]))
	assert.True(t, pipeline.IsAbsent(records[1]["A"]))
	assert.Equal(t, 2, records[1]["B"])
	assert.Equal(t, 3, records[2]["A"])

	idx, err := pivoted.GetIndex().ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2}, idx)
}

func TestDataFrameMergeOnIndex(t *testing.T) {
	left, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"name"},
		Records:     []map[string]any{{"name": "alice"}, {"name": "bob"}},
	})
	require.NoError(t, err)
	right, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"age"},
		Records:     []map[string]any{{"age": 30}, {"age": 40}},
	})
	require.NoError(t, err)
	merged, err := left.Merge(right, "")
	require.NoError(t, err)
	records, err := merged.ToRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["name"])
	assert.Equal(t, 30, records[0]["age"])
}

func TestDataFrameOrderByColumnNamePositionAndFunc(t *testing.T) {
	df := sampleFrame(t)

	byName, err := df.OrderBy("city")
	require.NoError(t, err)
	cities, err := byName.GetSeries("city").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, cities)

	byPos, err := df.OrderByDescending(2) // population column
	require.NoError(t, err)
	pops, err := byPos.GetSeries("population").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{2794356.0, 675647.0, 662248.0}, pops)

	byFunc, err := df.OrderBy(func(record map[string]any, index any) any {
		return record["country"]
	})
	require.NoError(t, err)
	thenByPop, err := byFunc.ThenByDescending("population")
	require.NoError(t, err)
	countries, err := thenByPop.GetSeries("country").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Canada", "Canada", "USA"}, countries)
}

func TestDataFrameOrderByUnknownPositionErrors(t *testing.T) {
	df := sampleFrame(t)
	_, err := df.OrderBy(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrInvalidArgument))
}

func TestDataFrameSetIndexPromotesColumn(t *testing.T) {
	df := sampleFrame(t)
	indexed, err := df.SetIndex("city")
	require.NoError(t, err)
	idx, err := indexed.GetIndex().ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, idx)
	// the column itself stays present in the record.
	cities, err := indexed.GetSeries("city").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, cities)
}

func TestDataFrameSetIndexUnknownColumnErrors(t *testing.T) {
	df := sampleFrame(t)
	_, err := df.SetIndex("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrUnknownColumn))
}

func TestDataFrameResetIndex(t *testing.T) {
	df := sampleFrame(t)
	indexed, err := df.SetIndex("city")
	require.NoError(t, err)
	reset := indexed.ResetIndex()
	idx, err := reset.GetIndex().ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 1, 2}, idx)
}

func TestDataFrameToRowsAlignedToColumns(t *testing.T) {
	df := sampleFrame(t)
	rows, err := df.ToRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []any{"Boston", "USA", 675647.0}, rows[0])
}

func TestDataFrameToJSONAbsentBecomesNull(t *testing.T) {
	df, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"a", "b"},
		Records:     []map[string]any{{"a": 1}},
	})
	require.NoError(t, err)
	raw, err := df.ToJSON()
	require.NoError(t, err)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(raw, &docs))
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0]["b"])
}

func TestDataFrameToCSVHeaderAndRows(t *testing.T) {
	df := sampleFrame(t)
	raw, err := df.ToCSV()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "city,country,population")
	assert.Contains(t, string(raw), "Boston,USA")
}

func TestDataFrameWindowProducesSubFrames(t *testing.T) {
	df := sampleFrame(t)
	windows := df.Window(2)
	pairs, err := windows.ToPairs()
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	first := pairs[0].Value.(*DataFrame)
	firstRecords, err := first.ToRecords()
	require.NoError(t, err)
	require.Len(t, firstRecords, 2)
}

func TestDataFrameWhereSelectProjection(t *testing.T) {
	df := sampleFrame(t)
	big := df.Where(func(record map[string]any, index any) bool {
		pop, _ := record["population"].(float64)
		return pop > 1_000_000
	})
	records, err := big.ToRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Toronto", records[0]["city"])
}

func TestDataFrameTransformAndGenerateSeries(t *testing.T) {
	df := sampleFrame(t)
	transformed := df.TransformSeries(map[string]func(value, index any) any{
		"population": func(v, i any) any { return v.(float64) / 1000 },
	})
	pops, err := transformed.GetSeries("population").ToValues()
	require.NoError(t, err)
	assert.InDelta(t, 675.647, pops[0], 0.001)

	generated := df.GenerateSeries(map[string]func(row map[string]any, index any) any{
		"big": func(row map[string]any, index any) any {
			return row["population"].(float64) > 1_000_000
		},
	})
	assert.Contains(t, generated.ColumnNames(), "big")
	bigVals, err := generated.GetSeries("big").ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{false, true, false}, bigVals)
}

func TestDeflateInflate(t *testing.T) {
	df := sampleFrame(t)
	deflated := df.Deflate(func(record map[string]any, index any) any {
		return record["city"]
	})
	cities, err := deflated.ToValues()
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, cities)

	inflated := Inflate(deflated, func(value, index any) map[string]any {
		return map[string]any{"city": value}
	})
	records, err := inflated.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, "Boston", records[0]["city"])
}

func TestDataFrameConstructorRejectsMultiplePayloads(t *testing.T) {
	_, err := NewDataFrame(DataFrameOptions{
		Records: []map[string]any{{"a": 1}},
		Columns: map[string][]any{"a": {1}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrInvalidArgument))
}

func TestDataFrameFromColumns(t *testing.T) {
	df, err := NewDataFrame(DataFrameOptions{
		Columns: map[string][]any{
			"a": {1, 2},
			"b": {"x", "y"},
		},
	})
	require.NoError(t, err)
	records, err := df.ToRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0]["a"])
	assert.Equal(t, "x", records[0]["b"])
}

func TestDataFrameSkipTakeHeadTail(t *testing.T) {
	df := sampleFrame(t)
	rows, err := df.Skip(1).Take(1).ToRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Toronto", rows[0][0])

	head, err := df.Head(2).ToRows()
	require.NoError(t, err)
	require.Len(t, head, 2)
	assert.Equal(t, "Boston", head[0][0])

	tail, err := df.Tail(2).ToRows()
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "Toronto", tail[0][0])
}

func TestDataFrameTakeWhileSkipUntil(t *testing.T) {
	df := sampleFrame(t)
	usa := func(record map[string]any, index any) bool { return record["country"] == "USA" }

	taken, err := df.TakeWhile(usa).ToRows()
	require.NoError(t, err)
	require.Len(t, taken, 1)
	assert.Equal(t, "Boston", taken[0][0])

	rest, err := df.SkipUntil(func(record map[string]any, index any) bool {
		return record["country"] == "Canada"
	}).ToRows()
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "Toronto", rest[0][0])
}

func TestDataFrameFirstLast(t *testing.T) {
	df := sampleFrame(t)
	first, err := df.First()
	require.NoError(t, err)
	assert.Equal(t, "Boston", first["city"])

	last, err := df.Last()
	require.NoError(t, err)
	assert.Equal(t, "Vancouver", last["city"])

	empty, err := NewDataFrame(DataFrameOptions{})
	require.NoError(t, err)
	_, err = empty.First()
	assert.True(t, errors.Is(err, pipeline.ErrEmptySequence))
	_, err = empty.Last()
	assert.True(t, errors.Is(err, pipeline.ErrEmptySequence))
}

func TestDataFrameReverse(t *testing.T) {
	df := sampleFrame(t)
	rows, err := df.Reverse().ToRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Vancouver", rows[0][0])
	assert.Equal(t, "Boston", rows[2][0])
}

func TestDataFrameForEach(t *testing.T) {
	df := sampleFrame(t)
	var cities []any
	err := df.ForEach(func(record map[string]any, index any) bool {
		cities = append(cities, record["city"])
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"Boston", "Toronto", "Vancouver"}, cities)
}

func TestDataFrameBakeKeepsColumnsAndRows(t *testing.T) {
	df := sampleFrame(t)
	baked, err := df.Where(func(record map[string]any, index any) bool {
		return record["country"] == "Canada"
	}).Bake()
	require.NoError(t, err)
	assert.Equal(t, df.ColumnNames(), baked.ColumnNames())
	rows, err := baked.ToRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestDataFrameAt(t *testing.T) {
	df := sampleFrame(t)
	v, err := df.At(1)
	require.NoError(t, err)
	rec, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Toronto", rec["city"])

	miss, err := df.At(99)
	require.NoError(t, err)
	assert.True(t, pipeline.IsAbsent(miss))
}

func TestRenameSeriesPositional(t *testing.T) {
	df := sampleFrame(t)
	renamed, err := df.RenameSeriesPositional([]string{"City", "Country", "Population"})
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "Country", "Population"}, renamed.ColumnNames())

	_, err = df.RenameSeriesPositional([]string{"too", "few"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrInvalidArgument))
}

func TestGenerateSeriesFromRowDiscoversColumns(t *testing.T) {
	df := sampleFrame(t)
	out := df.GenerateSeriesFromRow(func(row map[string]any, index any) map[string]any {
		pop, _ := row["population"].(float64)
		return map[string]any{"millions": pop / 1e6}
	})
	assert.Equal(t, []string{"city", "country", "population", "millions"}, out.ColumnNames())
	got, err := out.GetSeries("millions").ToValues()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.675647, got[0].(float64), 1e-9)
}

func TestDataFrameFromRowArrays(t *testing.T) {
	df, err := NewDataFrame(DataFrameOptions{
		ColumnNames: []string{"name", "score"},
		Rows: [][]any{
			{"alice", 10},
			{"bob"},
		},
	})
	require.NoError(t, err)
	rows, err := df.ToRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"alice", 10}, rows[0])
	assert.Equal(t, "bob", rows[1][0])
	assert.True(t, pipeline.IsAbsent(rows[1][1]))

	_, err = NewDataFrame(DataFrameOptions{Rows: [][]any{{1}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrInvalidArgument))
}

func TestPivotUnknownColumnErrors(t *testing.T) {
	df := sampleFrame(t)
	_, err := df.Pivot("nope", "population")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipeline.ErrUnknownColumn))
}

func TestSetSeriesDefersRowWorkUntilConsumption(t *testing.T) {
	df := sampleFrame(t)
	calls := 0
	updated, err := df.SetSeries("flag", func(row map[string]any, index any) any {
		calls++
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	_, err = updated.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
