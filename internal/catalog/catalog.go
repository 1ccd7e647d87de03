// Package catalog holds the fixed ETF list, default selection and chart palette.
package catalog

// ETF is one selectable fund.
type ETF struct {
	Symbol      string
	Description string
}

const unknownDescription = "暫無資料"

var defaultETFs = []ETF{
	{Symbol: "0050.TW", Description: "元大台灣50，追蹤台灣50指數，季配息。"},
	{Symbol: "0056.TW", Description: "元大高股息，追蹤台灣高股息指數，季配息。"},
	{Symbol: "00878.TW", Description: "國泰永續高股息，追蹤MSCI台灣ESG永續高股息精選30指數，月配息。"},
	{Symbol: "006208.TW", Description: "富邦台50，追蹤台灣50指數，半年配息。"},
	{Symbol: "00692.TW", Description: "富邦公司治理，追蹤台灣公司治理100指數，半年配息。"},
}

var defaultSelection = []string{"0050.TW", "0056.TW", "00878.TW"}

// Swatch is one chart colour. Marker stands in for it where only text renders.
type Swatch struct {
	Name   string
	Hex    string
	Marker string
}

// Macaron palette.
var defaultPalette = []Swatch{
	{Name: "blue", Hex: "#AEEEEE", Marker: "🟦"},
	{Name: "green", Hex: "#B7F0B1", Marker: "🟩"},
	{Name: "yellow", Hex: "#FFFACD", Marker: "🟨"},
	{Name: "orange", Hex: "#FFDAB9", Marker: "🟧"},
	{Name: "purple", Hex: "#E6E6FA", Marker: "🟪"},
	{Name: "pink", Hex: "#FFB6C1", Marker: "🟥"},
}

// Catalog is immutable after construction; accessors hand out copies.
type Catalog struct {
	etfs     []ETF
	index    map[string]int
	defaults []string
	palette  []Swatch
}

// Default returns the built-in Taiwan ETF catalog.
func Default() *Catalog {
	return New(defaultETFs, defaultSelection, defaultPalette)
}

// New builds a catalog. Default symbols that are not in etfs are dropped.
func New(etfs []ETF, defaults []string, palette []Swatch) *Catalog {
	c := &Catalog{
		etfs:    append([]ETF(nil), etfs...),
		index:   make(map[string]int, len(etfs)),
		palette: append([]Swatch(nil), palette...),
	}
	for i, e := range c.etfs {
		c.index[e.Symbol] = i
	}
	for _, s := range defaults {
		if c.Has(s) {
			c.defaults = append(c.defaults, s)
		}
	}
	return c
}

// ETFs returns every known fund in catalog order.
func (c *Catalog) ETFs() []ETF {
	return append([]ETF(nil), c.etfs...)
}

// Symbols returns every known symbol in catalog order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.etfs))
	for i, e := range c.etfs {
		out[i] = e.Symbol
	}
	return out
}

// Has reports whether symbol is selectable.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.index[symbol]
	return ok
}

// Describe returns the one-line description of symbol.
func (c *Catalog) Describe(symbol string) string {
	if i, ok := c.index[symbol]; ok {
		return c.etfs[i].Description
	}
	return unknownDescription
}

// DefaultSelection returns the symbols selected when nothing else was chosen.
func (c *Catalog) DefaultSelection() []string {
	return append([]string(nil), c.defaults...)
}

// Color returns the palette colour for the idx-th series, cycling.
func (c *Catalog) Color(idx int) Swatch {
	if len(c.palette) == 0 {
		return Swatch{}
	}
	if idx < 0 {
		idx = -idx
	}
	return c.palette[idx%len(c.palette)]
}

// Palette returns a copy of the chart colours.
func (c *Catalog) Palette() []Swatch {
	return append([]Swatch(nil), c.palette...)
}
