package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/NandakishoreN09/Grabit/internal/feed"
)

// StartOrderStatusConsumer forwards order.statuschanged messages into the
// live-update hub. Each instance binds its own exclusive queue to the
// events exchange, so a status change made anywhere reaches subscribers
// connected to any instance.
func StartOrderStatusConsumer(ctx context.Context, conn *amqp.Connection, hub *feed.Hub, logger zerolog.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Server-named, exclusive, auto-deleted with the connection.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, OrderStatusChangedRoutingKey, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		consumerTag,
		false, // autoAck
		true,  // exclusive
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info().Msg("stopping order status consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn().Msg("order status messages channel closed")
					return
				}

				if err := handleOrderStatusChanged(hub, msg.Body); err != nil {
					logger.Error().Err(err).Msg("handle order status message")
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func handleOrderStatusChanged(hub *feed.Hub, body []byte) error {
	var ev OrderStatusChanged
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal OrderStatusChanged: %w", err)
	}

	hub.Broadcast(feed.Event{
		OrderID:    ev.OrderID,
		UserID:     ev.UserID,
		Status:     ev.Status,
		OccurredAt: ev.Timestamp,
	})
	return nil
}
