package model

// SummaryRecord is the first-vs-last change of one symbol within a window.
type SummaryRecord struct {
	Symbol    string
	Start     float64
	End       float64
	ChangePct float64
}

// Advice is a fixed buy/hold/wait recommendation.
type Advice string

const (
	AdviceAggressiveWatch Advice = "AGGRESSIVE_WATCH"
	AdviceAccumulate      Advice = "ACCUMULATE"
	AdviceHoldOff         Advice = "HOLD_OFF"
)

var adviceText = map[Advice]string{
	AdviceAggressiveWatch: "建議觀察高點，分批買入",
	AdviceAccumulate:      "可考慮分批布局",
	AdviceHoldOff:         "建議暫緩，觀察反彈訊號",
}

// Text returns the user-facing recommendation.
func (a Advice) Text() string {
	if s, ok := adviceText[a]; ok {
		return s
	}
	return string(a)
}

// AdviceRecord pairs a symbol with its one-month recommendation.
type AdviceRecord struct {
	Symbol    string
	ChangePct float64
	Advice    Advice
}
