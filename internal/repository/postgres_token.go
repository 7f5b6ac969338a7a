package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

type PostgresTokenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTokenRepository(db *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{
		db: db,
	}
}

func (p *PostgresTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	return insertToken(ctx, p.db, token)
}

func (p *PostgresTokenRepository) Delete(ctx context.Context, hash []byte) error {
	_, err := p.db.Exec(ctx, `DELETE FROM tokens WHERE hash = $1`, hash)
	return err
}

func (p *PostgresTokenRepository) DeleteAllForUser(ctx context.Context, tokenScope string, userID int) error {
	query := `DELETE FROM tokens WHERE scope = $1 AND user_id = $2`

	_, err := p.db.Exec(ctx, query, tokenScope, userID)
	return err
}

// DeleteExpired purges every token past its expiry and reports how many were removed.
func (p *PostgresTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM tokens WHERE expiry <= NOW()`)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func insertToken(ctx context.Context, q querier, token *domain.Token) error {
	query := `INSERT INTO tokens (hash, user_id, expiry, scope)
			VALUES($1, $2, $3, $4)`

	_, err := q.Exec(ctx, query, token.Hash, token.UserId, token.Expiry, token.Scope)
	return err
}
