// Package testdb provides helpers for PostgreSQL integration tests: locating
// the test database, applying the embedded migrations once per process, and
// running each test inside a transaction that is always rolled back.
//
// Everything here is behind the integration build tag:
//
//	TASKNEST_TEST_DATABASE_URL=postgres://... go test -tags=integration ./...
package testdb
