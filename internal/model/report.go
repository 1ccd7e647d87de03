package model

import "time"

// WindowKind identifies one of the fixed comparison windows.
type WindowKind string

const (
	WindowCustom WindowKind = "CUSTOM"
	WindowMonth  WindowKind = "MONTH"
	Window7D     WindowKind = "7D"
	Window3D     WindowKind = "3D"
)

var windowLabels = map[WindowKind]string{
	WindowCustom: "自訂義日期區間",
	WindowMonth:  "近一個月",
	Window7D:     "近7天",
	Window3D:     "近3天",
}

// Label returns the display title of the window.
func (k WindowKind) Label() string {
	if s, ok := windowLabels[k]; ok {
		return s
	}
	return string(k)
}

// WindowReport is everything rendered for one window.
type WindowReport struct {
	Kind    WindowKind
	Closes  *Table
	Volumes *Table
	Summary []SummaryRecord
	Ranking []SummaryRecord
}

// Report is the result of one full recompute for a selection.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Selection   Selection
	Windows     []WindowReport
	// CustomEmpty is set when no selected symbol had data in the custom range.
	CustomEmpty bool

	MonthCloses  *Table
	MonthVolumes *Table
	MonthSummary []SummaryRecord
	Best         *SummaryRecord
	Worst        *SummaryRecord
	Advice       []AdviceRecord
}

// Window returns the report for kind, if rendered.
func (r *Report) Window(kind WindowKind) (WindowReport, bool) {
	for _, w := range r.Windows {
		if w.Kind == kind {
			return w, true
		}
	}
	return WindowReport{}, false
}

// Selection is the live user input: which ETFs and which custom range.
type Selection struct {
	Symbols     []string
	CustomStart time.Time
	CustomEnd   time.Time
}
