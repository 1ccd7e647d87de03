package calculator

import (
	"math"
	"sort"
	"time"

	"ETFPulse/internal/model"
)

// Field picks the value a table is built from.
type Field func(model.Bar) float64

// Close selects the closing price.
func Close(b model.Bar) float64 { return b.Close }

// Volume selects the traded volume.
func Volume(b model.Bar) float64 { return b.Volume }

// BuildTable aligns series onto the union of their dates, ascending.
// Series with no bars are left out; column order follows the input order.
func BuildTable(series []model.SymbolSeries, field Field) *model.Table {
	var symbols []string
	seen := make(map[int64]time.Time)
	for _, s := range series {
		if s.Empty() {
			continue
		}
		symbols = append(symbols, s.Symbol)
		for _, b := range s.Bars {
			seen[dayKey(b.Time)] = b.Time
		}
	}

	t := model.NewTable(symbols)
	keys := make([]int64, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	row := make(map[int64]int, len(keys))
	for i, k := range keys {
		t.Dates = append(t.Dates, seen[k])
		row[k] = i
	}

	for _, s := range series {
		if s.Empty() {
			continue
		}
		col := make([]float64, len(keys))
		for i := range col {
			col[i] = math.NaN()
		}
		for _, b := range s.Bars {
			col[row[dayKey(b.Time)]] = field(b)
		}
		t.Values[s.Symbol] = col
	}
	return t
}

// dayKey collapses a timestamp to its calendar day in its own location, so
// bars of different symbols on the same trading day share a row.
func dayKey(ts time.Time) int64 {
	y, m, d := ts.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// Tail returns a copy of the last n rows. Fewer than n rows yields every row.
func Tail(t *model.Table, n int) *model.Table {
	if t == nil {
		return model.NewTable(nil)
	}
	if n < 0 {
		n = 0
	}
	start := len(t.Dates) - n
	if start < 0 {
		start = 0
	}
	out := model.NewTable(t.Symbols)
	out.Dates = append([]time.Time(nil), t.Dates[start:]...)
	for _, s := range t.Symbols {
		col := t.Values[s]
		if start <= len(col) {
			out.Values[s] = append([]float64(nil), col[start:]...)
		}
	}
	return out
}

// Windows derives the trailing slices from a full-range table.
func Windows(full *model.Table) (month, last7, last3 *model.Table) {
	return full, Tail(full, 7), Tail(full, 3)
}
