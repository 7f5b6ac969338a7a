package mocks

import (
	"context"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

// MockTokenRepo is a mock implementation of TokenRepository
type MockTokenRepo struct {
	domain.TokenRepository
	CreateFunc           func(ctx context.Context, token *domain.Token) error
	DeleteFunc           func(ctx context.Context, hash []byte) error
	DeleteAllForUserFunc func(ctx context.Context, tokenScope string, userID int) error
	DeleteExpiredFunc    func(ctx context.Context) (int64, error)
}

func (m *MockTokenRepo) Create(ctx context.Context, token *domain.Token) error {
	return m.CreateFunc(ctx, token)
}

func (m *MockTokenRepo) Delete(ctx context.Context, hash []byte) error {
	return m.DeleteFunc(ctx, hash)
}

func (m *MockTokenRepo) DeleteAllForUser(ctx context.Context, tokenScope string, userID int) error {
	return m.DeleteAllForUserFunc(ctx, tokenScope, userID)
}

func (m *MockTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.DeleteExpiredFunc(ctx)
}
