// Package rabbitmq carries task notifications over a durable RabbitMQ queue.
//
// Publisher implements events.Publisher for the API server. Consumer drains
// the queue in the notifier process and hands every message to an
// events.Handler, acknowledging only after the handler succeeds.
package rabbitmq
