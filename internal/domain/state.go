package domain

import "time"

// OrderState is the per-item tally for the current day
type OrderState struct {
	Counts    map[string]int
	LastReset time.Time
}

// NewOrderState returns the all-zero state for the catalog.
func NewOrderState(catalog *Catalog, now time.Time) OrderState {
	return OrderState{
		Counts:    catalog.DefaultCounts(),
		LastReset: now,
	}
}

// MergeOrderState rebuilds state from stored counts. Only catalog ids are
// kept, missing ids default to 0 and negative values clamp to 0.
func MergeOrderState(catalog *Catalog, stored map[string]int, lastReset time.Time) OrderState {
	counts := catalog.DefaultCounts()
	for id, qty := range stored {
		if _, ok := counts[id]; !ok {
			continue
		}
		if qty < 0 {
			qty = 0
		}
		counts[id] = qty
	}
	return OrderState{Counts: counts, LastReset: lastReset}
}

// Quantity returns the count for id, 0 when absent
func (s OrderState) Quantity(id string) int {
	return s.Counts[id]
}

// Clone returns a deep copy so callers can hand out state safely
func (s OrderState) Clone() OrderState {
	counts := make(map[string]int, len(s.Counts))
	for id, qty := range s.Counts {
		counts[id] = qty
	}
	return OrderState{Counts: counts, LastReset: s.LastReset}
}

func (s OrderState) Increment(id string) OrderState {
	next := s.Clone()
	next.Counts[id]++
	return next
}

// Decrement floors at zero
func (s OrderState) Decrement(id string) OrderState {
	next := s.Clone()
	if next.Counts[id] > 0 {
		next.Counts[id]--
	} else {
		next.Counts[id] = 0
	}
	return next
}

func (s OrderState) ResetOne(id string) OrderState {
	next := s.Clone()
	next.Counts[id] = 0
	return next
}

// ResetAll zeroes every count and stamps a LastReset strictly after the
// previous one, even when the clock has not advanced.
func (s OrderState) ResetAll(catalog *Catalog, now time.Time) OrderState {
	if !now.After(s.LastReset) {
		now = s.LastReset.Add(time.Nanosecond)
	}
	return NewOrderState(catalog, now)
}
