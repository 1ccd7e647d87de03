package strategy

import "ETFPulse/internal/model"

// Bands maps a one-month change to advice. A change strictly above MinPct
// falls in the band; bands are checked top-down.
var Bands = []struct {
	MinPct float64
	Advice model.Advice
}{
	{2.0, model.AdviceAggressiveWatch},
	{0.0, model.AdviceAccumulate},
}

// DefaultAdvice applies to changes at or below zero.
const DefaultAdvice = model.AdviceHoldOff

// Advise maps a one-month percentage change to a recommendation.
func Advise(changePct float64) model.Advice {
	for _, b := range Bands {
		if changePct > b.MinPct {
			return b.Advice
		}
	}
	return DefaultAdvice
}

// AdviseAll returns one recommendation per summary record, in input order.
func AdviseAll(records []model.SummaryRecord) []model.AdviceRecord {
	out := make([]model.AdviceRecord, len(records))
	for i, r := range records {
		out[i] = model.AdviceRecord{Symbol: r.Symbol, ChangePct: r.ChangePct, Advice: Advise(r.ChangePct)}
	}
	return out
}
