package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/picture-palace-hub/internal/domain"
)

const userColumns = `users.id, users.username, users.email, users.password_hash, users.is_admin,
	users.balance, users.created_at`

type PostgesUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgesUserRepository {
	return &PostgesUserRepository{
		db: db,
	}
}

// CreateWithToken inserts the user and the token built by tokenFn in one transaction.
func (p *PostgesUserRepository) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	tokenFn func(*domain.User) (*domain.Token, error)) (*domain.Token, error) {

	var token *domain.Token

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `INSERT INTO users (username, email, password_hash, is_admin, balance)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, balance, created_at`

		err := tx.QueryRow(ctx,
			query,
			user.Username,
			user.Email,
			user.Password.Hash,
			user.IsAdmin,
			domain.DefaultBalance,
		).Scan(&user.ID, &user.Balance, &user.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrUserAlreadyExists
			}

			return err
		}

		token, err = tokenFn(user)
		if err != nil {
			return err
		}

		return insertToken(ctx, tx, token)
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// GetByToken returns the owner of the token together with the stored token. Expiry is
// left to the caller so an expired token can be reported and removed.
func (p *PostgesUserRepository) GetByToken(
	ctx context.Context,
	tokenHash []byte,
	tokenScope string) (*domain.User, *domain.Token, error) {

	query := `SELECT ` + userColumns + `, tokens.expiry
		FROM users
		INNER JOIN tokens ON users.id = tokens.user_id
		WHERE tokens.hash = $1 AND tokens.scope = $2`

	var (
		user  domain.User
		token = domain.Token{Hash: tokenHash, Scope: tokenScope}
	)

	err := p.db.QueryRow(ctx, query, tokenHash, tokenScope).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.IsAdmin,
		&user.Balance,
		&user.CreatedAt,
		&token.Expiry,
	)
	if err != nil {
		return nil, nil, notFound(err)
	}

	token.UserId = int64(user.ID)

	return &user, &token, nil
}

func (p *PostgesUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(p.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, notFound(err)
	}

	return user, nil
}

func (p *PostgesUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}

	return user, nil
}

func (p *PostgesUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.IsAdmin,
		&user.Balance,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
