// Package mocks provides hand-written test doubles for the store and auth
// interfaces. Each mock works as a small in-memory fake by default and
// accepts function overrides for error injection:
//
//	users := mocks.NewMockUserStore()
//	users.GetByUsernameFn = func(ctx context.Context, name string) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
