package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"wvw-tracker/internal/api"
	"wvw-tracker/internal/domain"
	"wvw-tracker/internal/repository"
)

// AccountService verifies an uploader's API key against the game API and
// records the verified account.
type AccountService struct {
	gw2         *api.GW2Client
	accountRepo *repository.AccountRepository
	logger      zerolog.Logger
}

func NewAccountService(gw2 *api.GW2Client, accountRepo *repository.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{gw2: gw2, accountRepo: accountRepo, logger: logger}
}

// Link verifies the key, requires the "account" permission, and upserts the
// linked account. The key itself is never stored.
func (s *AccountService) Link(ctx context.Context, apiKey string) (*domain.LinkedAccount, error) {
	token, err := s.gw2.GetTokenInfo(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("api key verification failed: %w", err)
	}
	if !hasPermission(token.Permissions, "account") {
		return nil, fmt.Errorf("api key lacks the account permission")
	}

	account, err := s.gw2.GetAccount(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}

	linked := &domain.LinkedAccount{
		AccountName: account.Name,
		DisplayName: token.Name,
		World:       account.World,
		LinkedAt:    time.Now(),
	}
	if err := s.accountRepo.Upsert(ctx, linked); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account", account.Name).Int("world", account.World).Msg("account linked")
	return linked, nil
}

func (s *AccountService) Get(ctx context.Context, accountName string) (*domain.LinkedAccount, error) {
	return s.accountRepo.Get(ctx, accountName)
}

func hasPermission(perms []string, want string) bool {
	for _, p := range perms {
		if p == want {
			return true
		}
	}
	return false
}
