// Package redis keeps a short per-user inbox of task notifications in Redis.
// The notifier process fills it from the queue.
package redis
