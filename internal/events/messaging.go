package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange               = "grabit.events"
	OrderPlacedRoutingKey        = "order.placed.v1"
	OrderStatusChangedRoutingKey = "order.statuschanged.v1"

	consumerTag = "grabit-storefront"
)

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
}
