package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T, items ...MenuItem) *Catalog {
	t.Helper()
	c, err := NewCatalog(items)
	require.NoError(t, err)
	return c
}

func TestDecrementNeverNegative(t *testing.T) {
	c := testCatalog(t, MenuItem{ID: "x", Name: "X", Price: 10})
	s := NewOrderState(c, time.Now())

	s = s.Decrement("x")
	assert.Equal(t, 0, s.Quantity("x"))

	s = s.Increment("x").Decrement("x").Decrement("x").Decrement("x")
	assert.Equal(t, 0, s.Quantity("x"))
}

func TestIncrementThenDecrement(t *testing.T) {
	c := testCatalog(t, MenuItem{ID: "x", Name: "X", Price: 10})
	s := NewOrderState(c, time.Now())

	s = s.Increment("x").Increment("x").Increment("x").Decrement("x")

	rows := Rows(c, s.Counts)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, 20, rows[0].Total)
}

func TestResetOneLeavesOthers(t *testing.T) {
	c := testCatalog(t,
		MenuItem{ID: "a", Name: "A", Price: 30},
		MenuItem{ID: "b", Name: "B", Price: 40},
	)
	s := NewOrderState(c, time.Now()).Increment("a").Increment("a").Increment("b")

	s = s.ResetOne("a")

	assert.Equal(t, 0, s.Quantity("a"))
	assert.Equal(t, 1, s.Quantity("b"))
}

func TestResetAllStampsLaterTime(t *testing.T) {
	c := testCatalog(t,
		MenuItem{ID: "a", Name: "A", Price: 30},
		MenuItem{ID: "b", Name: "B", Price: 40},
	)
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	s := NewOrderState(c, start).Increment("a").Increment("b")

	later := s.ResetAll(c, start.Add(time.Hour))
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, later.Counts)
	assert.True(t, later.LastReset.After(start))

	// clock did not move
	same := later.ResetAll(c, later.LastReset)
	assert.True(t, same.LastReset.After(later.LastReset))
}

func TestTransformationsDoNotMutateReceiver(t *testing.T) {
	c := testCatalog(t, MenuItem{ID: "a", Name: "A", Price: 30})
	s := NewOrderState(c, time.Now())

	_ = s.Increment("a")

	assert.Equal(t, 0, s.Quantity("a"))
}

func TestMergeOrderStateDropsUnknownIDs(t *testing.T) {
	c := testCatalog(t,
		MenuItem{ID: "a", Name: "A", Price: 30},
		MenuItem{ID: "b", Name: "B", Price: 40},
	)
	ts := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	s := MergeOrderState(c, map[string]int{"a": 4, "gone": 9, "b": -2}, ts)

	assert.Equal(t, map[string]int{"a": 4, "b": 0}, s.Counts)
	assert.Equal(t, ts, s.LastReset)
}
