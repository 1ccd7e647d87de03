package catalog

import "testing"

func TestDefault_KnownSymbols(t *testing.T) {
	c := Default()
	if got := len(c.Symbols()); got != 5 {
		t.Fatalf("expected 5 symbols, got %d", got)
	}
	for _, s := range []string{"0050.TW", "0056.TW", "00878.TW", "006208.TW", "00692.TW"} {
		if !c.Has(s) {
			t.Errorf("expected %s in catalog", s)
		}
	}
	if c.Has("2330.TW") {
		t.Error("2330.TW should not be selectable")
	}
}

func TestDescribe_Fallback(t *testing.T) {
	c := Default()
	if got := c.Describe("0050.TW"); got == unknownDescription {
		t.Errorf("expected description for 0050.TW, got %q", got)
	}
	if got := c.Describe("XXX"); got != unknownDescription {
		t.Errorf("expected fallback text, got %q", got)
	}
}

func TestDefaultSelection_IsCopy(t *testing.T) {
	c := Default()
	sel := c.DefaultSelection()
	if len(sel) != 3 || sel[0] != "0050.TW" {
		t.Fatalf("unexpected default selection %v", sel)
	}
	sel[0] = "mutated"
	if c.DefaultSelection()[0] != "0050.TW" {
		t.Error("default selection must not be mutable through the returned slice")
	}
}

func TestNew_DropsUnknownDefaults(t *testing.T) {
	c := New([]ETF{{Symbol: "A"}}, []string{"A", "B"}, nil)
	if sel := c.DefaultSelection(); len(sel) != 1 || sel[0] != "A" {
		t.Errorf("expected [A], got %v", sel)
	}
	if c.Color(3) != (Swatch{}) {
		t.Error("empty palette should yield empty colour")
	}
}

func TestColor_Cycles(t *testing.T) {
	c := Default()
	n := len(c.Palette())
	if c.Color(0) != c.Color(n) {
		t.Errorf("palette should cycle every %d entries", n)
	}
	if c.Color(1) == c.Color(0) {
		t.Error("adjacent series should get different colours")
	}
	if c.Color(0).Hex != "#AEEEEE" || c.Color(0).Marker == "" {
		t.Errorf("unexpected first swatch %+v", c.Color(0))
	}
}
