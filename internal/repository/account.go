package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wvw-tracker/internal/domain"
)

type AccountRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAccountRepository(db *sql.DB, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

func (r *AccountRepository) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO linked_accounts (account_name, display_name, world, linked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_name) DO UPDATE SET
			display_name = excluded.display_name,
			world = excluded.world,
			linked_at = excluded.linked_at,
			updated_at = excluded.updated_at`,
		account.AccountName, account.DisplayName, account.World, account.LinkedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert linked account: %w", err)
	}
	r.logger.Debug().Str("account", account.AccountName).Msg("linked account upserted")
	return nil
}

func (r *AccountRepository) Get(ctx context.Context, accountName string) (*domain.LinkedAccount, error) {
	a := domain.LinkedAccount{AccountName: accountName}
	err := r.db.QueryRowContext(ctx, `
		SELECT display_name, world, linked_at, created_at, updated_at
		FROM linked_accounts WHERE account_name = ?`, accountName).
		Scan(&a.DisplayName, &a.World, &a.LinkedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query linked account: %w", err)
	}
	return &a, nil
}
