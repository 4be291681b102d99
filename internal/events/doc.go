// Package events defines the notification emitted when a task is created
// and the interfaces that carry it off the request path.
//
// The primary components are:
//   - TaskNotification: the message body placed on the notification queue
//   - Publisher: sends a notification to a transport (RabbitMQ in production)
//   - Handler: consumes a notification on the receiving side
//   - Dispatcher: makes one bounded, best-effort publish attempt and swallows failures
//   - InMemoryPublisher: fans notifications out to in-process handlers
package events
