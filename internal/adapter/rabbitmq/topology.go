package rabbitmq

import "fmt"

const (
	// DayClosedExchange fans every closed day out to all bound report queues.
	DayClosedExchange = "daily_orders_fanout"
	// ReportQueue is the durable queue the day-close subscriber drains.
	ReportQueue = "daily_orders_reports"
)

// declareDayClosed declares the durable fanout exchange. Publisher and
// consumer both call it so either may start first.
func declareDayClosed(ch Channel) error {
	if err := ch.ExchangeDeclare(DayClosedExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}

// bindReportQueue declares the exchange and the report queue and binds them.
// It returns the queue name to consume from.
func bindReportQueue(ch Channel) (string, error) {
	if err := declareDayClosed(ch); err != nil {
		return "", err
	}

	q, err := ch.QueueDeclare(ReportQueue, true, false, false, false, nil)
	if err != nil {
		return "", fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", DayClosedExchange, false, nil); err != nil {
		return "", fmt.Errorf("failed to bind queue: %w", err)
	}

	return q.Name, nil
}
