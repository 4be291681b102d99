// Package store defines the persistence contracts for users, tasks and
// categories, the error taxonomy shared by every implementation, and the
// transaction helpers services use to make multi-step operations atomic.
package store
