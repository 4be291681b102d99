// Package service contains the application use cases: registration and
// login, task management and category management.
//
// Every task and category operation takes the authenticated user and scopes
// its reads and writes to that user's rows. Two ownership checks exist and
// are kept separate on purpose:
//
//   - fused: the lookup filters on id and owner together, so another user's
//     row is reported as not found (task update, tasks by category)
//   - separate: the row is found by id first and its owner compared after,
//     so another user's row is reported as forbidden (task delete)
//
// Multi-step operations run inside a store.Transactor transaction. Task
// creation hands a notification to a Notifier after the commit.
package service
