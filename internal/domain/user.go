package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBalance is credited to every new customer.
var DefaultBalance = decimal.NewFromInt(10000000)

type User struct {
	ID        int
	Username  string
	Email     string
	Password  password
	IsAdmin   bool
	Balance   decimal.Decimal
	CreatedAt time.Time
}

func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}

	return RoleCustomer
}

func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role()}
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	CreateWithToken(context.Context, *User, func(*User) (*Token, error)) (*Token, error)
	GetByToken(ctx context.Context, tokenHash []byte, tokenScope string) (*User, *Token, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
}
