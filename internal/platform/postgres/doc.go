// Package postgres implements the internal/store interfaces on PostgreSQL
// through the pgx stdlib driver. It also owns the schema: the goose
// migrations in migrations/ are embedded into the binary and applied by
// Migrate.
package postgres
