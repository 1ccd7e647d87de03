package calculator

import (
	"log"
	"math"
	"sort"

	"ETFPulse/internal/model"
)

// Summarize computes first-vs-last change per column, in column order.
// Missing cells are ignored; a column with no values is skipped. A column whose
// start value is zero has no defined percentage change and is skipped too.
func Summarize(t *model.Table) []model.SummaryRecord {
	if t == nil {
		return nil
	}
	out := make([]model.SummaryRecord, 0, len(t.Symbols))
	for _, sym := range t.Symbols {
		start, end, ok := firstLast(t.Values[sym])
		if !ok {
			continue
		}
		pct, err := ChangePct(start, end)
		if err != nil {
			log.Printf("[WARN] skip %s: %v", sym, err)
			continue
		}
		out = append(out, model.SummaryRecord{Symbol: sym, Start: start, End: end, ChangePct: pct})
	}
	return out
}

// ChangePct returns (end-start)/start*100.
func ChangePct(start, end float64) (float64, error) {
	if start == 0 {
		return 0, ErrZeroStart
	}
	pct := (end - start) / start * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, ErrNotFinite
	}
	return pct, nil
}

func firstLast(col []float64) (first, last float64, ok bool) {
	i := 0
	for i < len(col) && model.Missing(col[i]) {
		i++
	}
	if i == len(col) {
		return 0, 0, false
	}
	j := len(col) - 1
	for model.Missing(col[j]) {
		j--
	}
	return col[i], col[j], true
}

// RankDescending returns a copy sorted by change, highest first. Equal changes
// keep their input order.
func RankDescending(records []model.SummaryRecord) []model.SummaryRecord {
	out := append([]model.SummaryRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangePct > out[j].ChangePct })
	return out
}

// Extreme returns the best and worst records. On ties the first encountered
// record wins. ok is false for empty input.
func Extreme(records []model.SummaryRecord) (best, worst model.SummaryRecord, ok bool) {
	if len(records) == 0 {
		return model.SummaryRecord{}, model.SummaryRecord{}, false
	}
	best, worst = records[0], records[0]
	for _, r := range records[1:] {
		if r.ChangePct > best.ChangePct {
			best = r
		}
		if r.ChangePct < worst.ChangePct {
			worst = r
		}
	}
	return best, worst, true
}
