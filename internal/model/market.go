package model

import (
	"math"
	"time"
)

// Bar is one daily row of a symbol's history.
type Bar struct {
	Time   time.Time
	Close  float64
	Volume float64
}

// SymbolSeries holds the bars returned for one symbol, ordered by date ascending.
type SymbolSeries struct {
	Symbol string
	Bars   []Bar
}

// Empty reports whether the provider returned nothing for the symbol.
func (s SymbolSeries) Empty() bool { return len(s.Bars) == 0 }

// Table is a multi-symbol table aligned on a shared date axis.
// Symbols keeps column insertion order; a cell a symbol has no bar for is NaN.
type Table struct {
	Dates   []time.Time
	Symbols []string
	Values  map[string][]float64
}

// NewTable returns an empty table with the given columns.
func NewTable(symbols []string) *Table {
	t := &Table{
		Symbols: append([]string(nil), symbols...),
		Values:  make(map[string][]float64, len(symbols)),
	}
	for _, s := range symbols {
		t.Values[s] = nil
	}
	return t
}

// Rows returns the number of dates on the axis.
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return len(t.Dates)
}

// Empty reports whether the table has no columns or no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Symbols) == 0 || len(t.Dates) == 0
}

// Column returns the values of one symbol, or nil if absent.
func (t *Table) Column(symbol string) []float64 {
	if t == nil {
		return nil
	}
	return t.Values[symbol]
}

// Missing reports whether v marks a cell with no data.
func Missing(v float64) bool { return math.IsNaN(v) }
