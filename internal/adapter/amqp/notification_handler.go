package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/domain"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

// DayClosedHandler prints every closed day it receives.
type DayClosedHandler struct {
	logger logger.Logger
	out    io.Writer
}

func NewDayClosedHandler(logger logger.Logger, out io.Writer) *DayClosedHandler {
	if out == nil {
		out = os.Stdout
	}
	return &DayClosedHandler{
		logger: logger,
		out:    out,
	}
}

func (h *DayClosedHandler) HandleDayClosed(ctx context.Context, body []byte) error {
	var msg interfaces.DayClosedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse day close report", "", nil, err)
		return err
	}

	h.logger.Info("day_closed_received", "Received day close report", "", map[string]interface{}{
		"closed_at":    msg.ClosedAt,
		"total_items":  msg.TotalItems,
		"total_amount": msg.TotalAmount,
		"lines":        len(msg.Lines),
	})

	fmt.Fprintf(h.out, "Day closed at %s: %d items, %s\n",
		msg.ClosedAt.Format("2006-01-02 15:04"), msg.TotalItems, domain.FormatCurrency(msg.TotalAmount))
	for _, line := range msg.Lines {
		fmt.Fprintf(h.out, "  %-28s x%-4d %s\n", line.Name, line.Quantity, domain.FormatCurrency(line.Total))
	}

	return nil
}
