package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"drift_chronicles_service/internal/identity/domain"
	errprocess "drift_chronicles_service/pkg/err"
)

// AccountRepository definition credentialed account storage
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error)
}

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository create a AccountRepository
func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO account(subject_id, email, password) VALUES ($1, $2, $3)",
		account.SubjectID, account.Email, account.Password)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to create account", err)
	}
	return nil
}

func (r *accountRepository) FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error) {
	queryStr := "SELECT id, subject_id, email, password FROM account WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if query.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *query.Email)
		paramCount++
	}
	if query.SubjectID != nil {
		queryStr += fmt.Sprintf(" AND subject_id = $%d", paramCount)
		params = append(params, *query.SubjectID)
		paramCount++
	}
	if query.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *query.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var account domain.Account
	err := row.Scan(&account.ID, &account.SubjectID, &account.Email, &account.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errprocess.New(errprocess.KindNotFound, "no account found with given criteria")
		}
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to query account", err)
	}

	return &account, nil
}
