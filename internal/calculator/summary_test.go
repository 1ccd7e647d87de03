package calculator

import (
	"errors"
	"math"
	"testing"

	"ETFPulse/internal/model"
)

const eps = 1e-9

func TestSummarize_FirstVsLast(t *testing.T) {
	tbl := BuildTable([]model.SymbolSeries{
		series("A", 100, 90, 120),
		series("B", 50, 45),
	}, Close)

	got := Summarize(tbl)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Symbol != "A" || got[1].Symbol != "B" {
		t.Errorf("records must follow column order, got %s,%s", got[0].Symbol, got[1].Symbol)
	}
	if math.Abs(got[0].ChangePct-20) > eps {
		t.Errorf("A: expected 20%%, got %v", got[0].ChangePct)
	}
	if math.Abs(got[1].ChangePct-(-10)) > eps {
		t.Errorf("B: expected -10%%, got %v", got[1].ChangePct)
	}
	if got[0].Start != 100 || got[0].End != 120 {
		t.Errorf("A: unexpected start/end %v/%v", got[0].Start, got[0].End)
	}
}

func TestSummarize_SkipsColumnWithoutRows(t *testing.T) {
	tbl := model.NewTable([]string{"A", "B"})
	tbl.Values["A"] = []float64{}
	if got := Summarize(tbl); len(got) != 0 {
		t.Fatalf("expected no records for zero-row table, got %d", len(got))
	}
}

func TestSummarize_IgnoresMissingCells(t *testing.T) {
	// B starts trading one day after A and stops one day early.
	a := series("A", 10, 11, 12, 13)
	b := model.SymbolSeries{Symbol: "B", Bars: []model.Bar{
		{Time: day(1), Close: 200},
		{Time: day(2), Close: 210},
	}}
	got := Summarize(BuildTable([]model.SymbolSeries{a, b}, Close))
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[1].Start != 200 || got[1].End != 210 {
		t.Errorf("B: expected 200->210, got %v->%v", got[1].Start, got[1].End)
	}
	if math.Abs(got[1].ChangePct-5) > eps {
		t.Errorf("B: expected 5%%, got %v", got[1].ChangePct)
	}
}

func TestSummarize_AllMissingColumn(t *testing.T) {
	tbl := model.NewTable([]string{"A"})
	tbl.Dates = rows(2).Dates
	tbl.Values["A"] = []float64{math.NaN(), math.NaN()}
	if got := Summarize(tbl); len(got) != 0 {
		t.Errorf("expected column of NaN to be skipped, got %v", got)
	}
}

func TestSummarize_SkipsZeroStart(t *testing.T) {
	tbl := BuildTable([]model.SymbolSeries{series("Z", 0, 5), series("A", 10, 11)}, Close)
	got := Summarize(tbl)
	if len(got) != 1 || got[0].Symbol != "A" {
		t.Fatalf("expected only A, got %v", got)
	}
}

func TestSummarize_Nil(t *testing.T) {
	if got := Summarize(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestChangePct(t *testing.T) {
	pct, err := ChangePct(100, 110)
	if err != nil || math.Abs(pct-10) > eps {
		t.Errorf("expected 10, got %v (%v)", pct, err)
	}
	if _, err := ChangePct(0, 1); !errors.Is(err, ErrZeroStart) {
		t.Errorf("expected ErrZeroStart, got %v", err)
	}
	if _, err := ChangePct(1, math.Inf(1)); !errors.Is(err, ErrNotFinite) {
		t.Errorf("expected ErrNotFinite, got %v", err)
	}
}

func TestRankDescending(t *testing.T) {
	in := []model.SummaryRecord{
		{Symbol: "A", ChangePct: 1},
		{Symbol: "B", ChangePct: 5},
		{Symbol: "C", ChangePct: 1},
		{Symbol: "D", ChangePct: -2},
		{Symbol: "E", ChangePct: 5},
	}
	got := RankDescending(in)
	want := []string{"B", "E", "A", "C", "D"}
	for i, w := range want {
		if got[i].Symbol != w {
			t.Fatalf("position %d: expected %s, got %s (%v)", i, w, got[i].Symbol, got)
		}
	}
	if in[0].Symbol != "A" {
		t.Error("RankDescending must not reorder its input")
	}

	again := RankDescending(got)
	for i := range got {
		if again[i] != got[i] {
			t.Fatalf("ranking is not idempotent at %d: %v vs %v", i, again, got)
		}
	}
}

func TestExtreme(t *testing.T) {
	best, worst, ok := Extreme([]model.SummaryRecord{
		{Symbol: "A", ChangePct: 5},
		{Symbol: "B", ChangePct: -3},
		{Symbol: "C", ChangePct: 1},
	})
	if !ok {
		t.Fatal("expected ok")
	}
	if best.Symbol != "A" || best.ChangePct != 5 {
		t.Errorf("expected best A(+5), got %s(%v)", best.Symbol, best.ChangePct)
	}
	if worst.Symbol != "B" || worst.ChangePct != -3 {
		t.Errorf("expected worst B(-3), got %s(%v)", worst.Symbol, worst.ChangePct)
	}
}

func TestExtreme_TiesFirstWins(t *testing.T) {
	best, worst, _ := Extreme([]model.SummaryRecord{
		{Symbol: "A", ChangePct: 2},
		{Symbol: "B", ChangePct: 2},
		{Symbol: "C", ChangePct: -1},
		{Symbol: "D", ChangePct: -1},
	})
	if best.Symbol != "A" {
		t.Errorf("expected first max A, got %s", best.Symbol)
	}
	if worst.Symbol != "C" {
		t.Errorf("expected first min C, got %s", worst.Symbol)
	}
}

func TestExtreme_Empty(t *testing.T) {
	if _, _, ok := Extreme(nil); ok {
		t.Error("expected ok=false for empty records")
	}
}
