package services

// EventPublisher publishes domain events to the message broker.
// *rabbitmq.Client satisfies it; tests substitute a mock. Services treat
// a nil publisher as "events disabled".
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
