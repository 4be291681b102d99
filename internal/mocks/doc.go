// Package mocks provides centralized mock implementations for testing.
//
// Store mocks keep their rows in memory and enforce the same ownership and
// uniqueness rules as the PostgreSQL stores, so service and handler tests
// can run whole flows without a database. Every method can be overridden
// through its Fn field.
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
