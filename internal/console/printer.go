// Package console prints a report to a terminal.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"ETFPulse/internal/catalog"
	"ETFPulse/internal/chart"
	"ETFPulse/internal/model"
	"ETFPulse/internal/notifier"
)

// swatchAttrs maps palette names to the closest terminal colour.
var swatchAttrs = map[string]color.Attribute{
	"blue":   color.FgHiCyan,
	"green":  color.FgHiGreen,
	"yellow": color.FgHiYellow,
	"orange": color.FgYellow,
	"purple": color.FgHiMagenta,
	"pink":   color.FgHiRed,
}

// Printer writes reports to w.
type Printer struct {
	w       io.Writer
	catalog *catalog.Catalog

	title *color.Color
	up    *color.Color
	down  *color.Color
	muted *color.Color
}

// NewPrinter creates a Printer. Colour is disabled automatically when w is
// not a terminal (see color.NoColor).
func NewPrinter(w io.Writer, c *catalog.Catalog) *Printer {
	return &Printer{
		w:       w,
		catalog: c,
		title:   color.New(color.Bold, color.FgHiWhite),
		up:      color.New(color.FgRed),
		down:    color.New(color.FgGreen),
		muted:   color.New(color.Faint),
	}
}

func (p *Printer) series(idx int) *color.Color {
	if attr, ok := swatchAttrs[p.catalog.Color(idx).Name]; ok {
		return color.New(attr)
	}
	return color.New(color.Reset)
}

// pct colours changes the Taiwan way: red up, green down.
func (p *Printer) pct(v float64) string {
	s := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return p.up.Sprint(s)
	case v < 0:
		return p.down.Sprint(s)
	default:
		return s
	}
}

// Print writes the whole report.
func (p *Printer) Print(rep *model.Report) {
	p.title.Fprintf(p.w, "台灣熱門ETF近期表現整理  %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04"))
	p.printSidebar(rep)
	if rep.CustomEmpty {
		fmt.Fprintf(p.w, "\n%s ~ %s 此區間無資料，請重新選擇日期。\n",
			rep.Selection.CustomStart.Format("2006-01-02"), rep.Selection.CustomEnd.Format("2006-01-02"))
	}
	for _, w := range rep.Windows {
		fmt.Fprintln(p.w)
		p.printWindow(w)
	}
	p.muted.Fprintf(p.w, "\n股價資料來源：Yahoo! Finance  最後更新時間：%s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
}

func (p *Printer) printSidebar(rep *model.Report) {
	p.title.Fprintln(p.w, "ETF簡介")
	for _, sym := range rep.Selection.Symbols {
		fmt.Fprintf(p.w, "  %-10s %s\n", sym, p.catalog.Describe(sym))
	}
	if rep.Best == nil {
		return
	}
	fmt.Fprintln(p.w)
	p.title.Fprintln(p.w, "ETF總結與買入建議")
	fmt.Fprintf(p.w, "  近一個月表現最佳ETF：%s（%s）\n", rep.Best.Symbol, p.pct(rep.Best.ChangePct))
	fmt.Fprintf(p.w, "  近一個月表現最差ETF：%s（%s）\n", rep.Worst.Symbol, p.pct(rep.Worst.ChangePct))
	for _, a := range rep.Advice {
		fmt.Fprintf(p.w, "  %-10s %s  %s\n", a.Symbol, p.pct(a.ChangePct), a.Advice.Text())
	}
}

func (p *Printer) printWindow(w model.WindowReport) {
	title := w.Kind.Label()
	p.title.Fprintf(p.w, "%sETF收盤價\n", title)
	if w.Closes.Empty() {
		fmt.Fprintln(p.w, "  此區間無資料")
		return
	}
	fmt.Fprint(p.w, notifier.FormatTable(w.Closes, notifier.MaxTableRows))

	for i, sym := range w.Closes.Symbols {
		c := p.series(i)
		fmt.Fprintf(p.w, "  %s %s\n", c.Sprintf("%-10s", sym), c.Sprint(chart.Sparkline(w.Closes.Column(sym))))
	}
	p.title.Fprintf(p.w, "%sETF成交量\n", title)
	for i, sym := range w.Volumes.Symbols {
		c := p.series(i)
		fmt.Fprintf(p.w, "  %s %s\n", c.Sprintf("%-10s", sym), c.Sprint(chart.Sparkline(w.Volumes.Column(sym))))
	}

	if len(w.Ranking) == 0 {
		return
	}
	p.title.Fprintf(p.w, "%sETF漲跌幅排行\n", title)
	pcts := make([]float64, len(w.Ranking))
	for i, r := range w.Ranking {
		pcts[i] = r.ChangePct
	}
	top := chart.MaxAbs(pcts)
	for i, r := range w.Ranking {
		c := p.series(i)
		fmt.Fprintf(p.w, "  %d. %s %s %s\n", i+1, c.Sprintf("%-10s", r.Symbol), c.Sprint(chart.Bar(r.ChangePct, top, 20)), p.pct(r.ChangePct))
	}
}
