package amqp

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
)

func TestHandleDayClosedPrintsReport(t *testing.T) {
	var out bytes.Buffer
	h := NewDayClosedHandler(logger.Nop(), &out)

	body := []byte(`{"closed_at":"2026-10-19T22:00:00Z","total_items":3,"total_amount":1250,
		"lines":[{"item_id":"veg-biryani","name":"Veg Biryani","quantity":3,"price":100,"total":300}]}`)

	require.NoError(t, h.HandleDayClosed(context.Background(), body))

	assert.Contains(t, out.String(), "Day closed at 2026-10-19 22:00: 3 items, ₹1,250")
	assert.Contains(t, out.String(), "Veg Biryani")
	assert.Contains(t, out.String(), "₹300")
}

func TestHandleDayClosedRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	h := NewDayClosedHandler(logger.Nop(), &out)

	assert.Error(t, h.HandleDayClosed(context.Background(), []byte("not json")))
	assert.Empty(t, out.String())
}
