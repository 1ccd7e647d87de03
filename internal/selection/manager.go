package selection

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"ETFPulse/internal/catalog"
	"ETFPulse/internal/model"
)

var (
	ErrEmptySelection = errors.New("at least one ETF must be selected")
	ErrUnknownSymbol  = errors.New("unknown ETF symbol")
	ErrInvalidRange   = errors.New("start date must be before end date")
)

// MonthLookback is how far back the default and one-month windows reach.
const MonthLookback = 31 * 24 * time.Hour

// Manager holds the live selection with concurrency safety. Nothing is
// written to disk; a restart returns to the catalog defaults.
type Manager struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	now     func() time.Time
	symbols []string

	// zero values mean "follow the default one-month range"
	customStart time.Time
	customEnd   time.Time
}

// NewManager creates a Manager starting from the catalog's default selection.
func NewManager(c *catalog.Catalog, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		catalog: c,
		now:     now,
		symbols: c.DefaultSelection(),
	}
}

// Current returns a copy of the selection, resolving the default custom range.
func (m *Manager) Current() model.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	start, end := m.customStart, m.customEnd
	if start.IsZero() || end.IsZero() {
		start, end = DefaultRange(m.now())
	}
	return model.Selection{
		Symbols:     append([]string(nil), m.symbols...),
		CustomStart: start,
		CustomEnd:   end,
	}
}

// SetSymbols replaces the selected ETFs. Order is kept and duplicates dropped.
func (m *Manager) SetSymbols(symbols []string) error {
	var picked []string
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if !m.catalog.Has(s) {
			return fmt.Errorf("%w: %s", ErrUnknownSymbol, s)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		picked = append(picked, s)
	}
	if len(picked) == 0 {
		return ErrEmptySelection
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols = picked
	return nil
}

// SetCustomRange sets the custom window. Dates are calendar days; end is exclusive.
func (m *Manager) SetCustomRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customStart, m.customEnd = start, end
	return nil
}

// Reset returns to the default ETFs and range.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols = m.catalog.DefaultSelection()
	m.customStart, m.customEnd = time.Time{}, time.Time{}
}

// DefaultRange returns [today-31d, today) in now's location, truncated to days.
func DefaultRange(now time.Time) (start, end time.Time) {
	y, mo, d := now.Date()
	end = time.Date(y, mo, d, 0, 0, 0, 0, now.Location())
	start = end.AddDate(0, 0, -int(MonthLookback/(24*time.Hour)))
	return start, end
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
