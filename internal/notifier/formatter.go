package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ETFPulse/internal/catalog"
	"ETFPulse/internal/chart"
	"ETFPulse/internal/model"
)

// MaxTableRows caps the close table in a message; the CSV has everything.
const MaxTableRows = 10

const barWidth = 12

// FormatReport renders a full report as a sequence of Telegram messages:
// the summary first, then one message per window, then the footer.
func FormatReport(cat *catalog.Catalog, rep *model.Report) []string {
	msgs := []string{FormatSidebar(cat, rep)}
	if rep.CustomEmpty {
		msgs = append(msgs, FormatCustomEmpty(rep.Selection))
	}
	for _, w := range rep.Windows {
		msgs = append(msgs, FormatWindow(cat, w))
	}
	msgs = append(msgs, FormatFooter(rep.GeneratedAt))
	return msgs
}

// FormatSidebar renders ETF descriptions, best/worst, per-ETF change and advice.
func FormatSidebar(cat *catalog.Catalog, rep *model.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>台灣熱門ETF近期表現整理</b> | %s\n\n", rep.GeneratedAt.Format("2006-01-02")))

	b.WriteString("📘 <b>ETF簡介</b>\n")
	for _, sym := range rep.Selection.Symbols {
		b.WriteString(fmt.Sprintf("• <b>%s</b>：%s\n", html.EscapeString(sym), html.EscapeString(cat.Describe(sym))))
	}

	if len(rep.MonthSummary) == 0 || rep.Best == nil {
		b.WriteString("\n近一個月無任何ETF資料")
		return b.String()
	}

	b.WriteString("\n💡 <b>ETF總結與買入建議</b>\n")
	b.WriteString(fmt.Sprintf("近一個月表現最佳ETF：<b>%s</b>（%.2f%%）\n", rep.Best.Symbol, rep.Best.ChangePct))
	b.WriteString(fmt.Sprintf("近一個月表現最差ETF：<b>%s</b>（%.2f%%）\n", rep.Worst.Symbol, rep.Worst.ChangePct))

	b.WriteString("\n<b>各ETF近一個月漲跌幅：</b>\n")
	for _, r := range rep.MonthSummary {
		b.WriteString(fmt.Sprintf("- %s：%.2f%%\n", r.Symbol, r.ChangePct))
	}

	b.WriteString("\n<b>買入建議：</b>\n")
	for _, a := range rep.Advice {
		b.WriteString(fmt.Sprintf("- %s：%s\n", a.Symbol, a.Advice.Text()))
	}
	return b.String()
}

// FormatCustomEmpty asks the user to pick another custom range.
func FormatCustomEmpty(sel model.Selection) string {
	return fmt.Sprintf("ℹ️ %s ~ %s 此區間無資料，請重新選擇日期。\n用法: /range 2006-01-02 2006-01-31",
		sel.CustomStart.Format("2006-01-02"), sel.CustomEnd.Format("2006-01-02"))
}

// FormatWindow renders the close table, price and volume charts and the
// ranking for one window.
func FormatWindow(cat *catalog.Catalog, w model.WindowReport) string {
	title := w.Kind.Label()
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🗂 <b>%sETF收盤價</b>\n", title))
	if w.Closes.Empty() {
		b.WriteString("此區間無資料\n")
		return b.String()
	}
	b.WriteString("<pre>")
	b.WriteString(html.EscapeString(FormatTable(w.Closes, MaxTableRows)))
	b.WriteString("</pre>\n")
	if n := w.Closes.Rows(); n > MaxTableRows {
		b.WriteString(fmt.Sprintf("<i>僅顯示最近 %d 筆（共 %d 筆），完整資料請下載 CSV</i>\n", MaxTableRows, n))
	}

	b.WriteString(fmt.Sprintf("\n📈 <b>%sETF收盤價走勢</b>\n", title))
	for i, sym := range w.Closes.Symbols {
		col := w.Closes.Column(sym)
		line := fmt.Sprintf("%s %s <code>%s</code>", cat.Color(i).Marker, sym, chart.Sparkline(col))
		if s, ok := findRecord(w.Summary, sym); ok {
			line += fmt.Sprintf(" %.2f → %.2f", s.Start, s.End)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\n📦 <b>%sETF成交量</b>\n", title))
	for i, sym := range w.Volumes.Symbols {
		col := w.Volumes.Column(sym)
		avg, ok := chart.Mean(col)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s <code>%s</code> 平均 %s\n",
			cat.Color(i).Marker, sym, chart.Sparkline(col), humanize.Comma(int64(math.Round(avg)))))
	}

	if len(w.Ranking) > 0 {
		b.WriteString(fmt.Sprintf("\n🏆 <b>%sETF漲跌幅排行</b>\n", title))
		b.WriteString(FormatRanking(cat, w.Ranking))
	}
	return b.String()
}

// FormatRanking renders one bar per record; colours follow ranking order.
func FormatRanking(cat *catalog.Catalog, ranking []model.SummaryRecord) string {
	pcts := make([]float64, len(ranking))
	for i, r := range ranking {
		pcts[i] = r.ChangePct
	}
	top := chart.MaxAbs(pcts)
	var b strings.Builder
	for i, r := range ranking {
		b.WriteString(fmt.Sprintf("%d. %s %s <code>%s</code> %+.2f%%\n",
			i+1, cat.Color(i).Marker, r.Symbol, chart.Bar(r.ChangePct, top, barWidth), r.ChangePct))
	}
	return b.String()
}

// FormatTable renders the last maxRows rows of t as fixed-width text.
func FormatTable(t *model.Table, maxRows int) string {
	start := 0
	if maxRows > 0 && t.Rows() > maxRows {
		start = t.Rows() - maxRows
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s", "Date"))
	for _, sym := range t.Symbols {
		b.WriteString(fmt.Sprintf(" %10s", sym))
	}
	b.WriteString("\n")
	for i := start; i < t.Rows(); i++ {
		b.WriteString(t.Dates[i].Format("2006-01-02"))
		for _, sym := range t.Symbols {
			col := t.Column(sym)
			if i >= len(col) || model.Missing(col[i]) {
				b.WriteString(fmt.Sprintf(" %10s", "-"))
				continue
			}
			b.WriteString(fmt.Sprintf(" %10.2f", col[i]))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatFooter names the data source and the update time.
func FormatFooter(at time.Time) string {
	return fmt.Sprintf("股價資料來源：<a href=\"https://tw.finance.yahoo.com/\">Yahoo! Finance</a>\n最後更新時間：%s",
		at.Format("2006-01-02 15:04:05"))
}

// FormatCatalog lists every selectable ETF and marks the current selection.
func FormatCatalog(cat *catalog.Catalog, sel model.Selection) string {
	picked := make(map[string]bool, len(sel.Symbols))
	for _, s := range sel.Symbols {
		picked[s] = true
	}
	var b strings.Builder
	b.WriteString("📋 <b>可選ETF</b>\n")
	for _, e := range cat.ETFs() {
		mark := "☐"
		if picked[e.Symbol] {
			mark = "☑"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>：%s\n", mark, e.Symbol, html.EscapeString(e.Description)))
	}
	b.WriteString(fmt.Sprintf("\n自訂區間：%s ~ %s",
		sel.CustomStart.Format("2006-01-02"), sel.CustomEnd.Format("2006-01-02")))
	return b.String()
}

func findRecord(records []model.SummaryRecord, symbol string) (model.SummaryRecord, bool) {
	for _, r := range records {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return model.SummaryRecord{}, false
}
