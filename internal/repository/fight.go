package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"wvw-tracker/internal/domain"
)

// ErrNotFound is returned when a fight id resolves to nothing.
var ErrNotFound = errors.New("fight not found")

type FightRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewFightRepository(db *sql.DB, logger zerolog.Logger) *FightRepository {
	return &FightRepository{db: db, logger: logger}
}

// Save persists a fight with all its participants in one transaction and
// returns the generated report id. The fingerprint column is unique; a
// duplicate upload returns the existing fight's id instead of a new row.
func (r *FightRepository) Save(ctx context.Context, fight *domain.Fight, players []domain.FightPlayer) (string, error) {
	if existing, err := r.GetIDByFingerprint(ctx, fight.Fingerprint); err == nil {
		r.logger.Info().
			Str("fight_id", existing).
			Str("fingerprint", fight.Fingerprint).
			Msg("duplicate upload, reusing stored fight")
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO fights (id, fingerprint, fight_id, build_date, revision, duration_seconds,
			ally_count, enemy_count, unknown_events, uploaded_by, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fight.Fingerprint, fight.FightID, fight.BuildDate, fight.Revision, fight.DurationSeconds,
		fight.AllyCount, fight.EnemyCount, fight.UnknownEvents, fight.UploadedBy, fight.UploadedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert fight: %w", err)
	}

	for _, p := range players {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fight_players (fight_id, name, account, profession, elite_spec, team, subgroup,
				ally, role, damage_dealt, damage_taken, healing, barrier, cleanses, strips,
				crowd_control, kills, deaths, downs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Name, p.Account, p.Profession, p.EliteSpec, p.Team, p.Subgroup,
			p.Ally, p.Role, p.Stats.DamageDealt, p.Stats.DamageTaken, p.Stats.Healing,
			p.Stats.Barrier, p.Stats.Cleanses, p.Stats.Strips, p.Stats.CrowdControl,
			p.Stats.Kills, p.Stats.Deaths, p.Stats.Downs)
		if err != nil {
			return "", fmt.Errorf("failed to insert fight player %s: %w", p.Account, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit fight: %w", err)
	}
	return id, nil
}

func (r *FightRepository) GetIDByFingerprint(ctx context.Context, fingerprint string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM fights WHERE fingerprint = ?`, fingerprint).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query fingerprint: %w", err)
	}
	return id, nil
}

func (r *FightRepository) Get(ctx context.Context, id string) (*domain.Fight, error) {
	f := domain.Fight{ID: id}
	err := r.db.QueryRowContext(ctx, `
		SELECT fingerprint, fight_id, build_date, revision, duration_seconds,
			ally_count, enemy_count, unknown_events, uploaded_by, uploaded_at, created_at
		FROM fights WHERE id = ?`, id).
		Scan(&f.Fingerprint, &f.FightID, &f.BuildDate, &f.Revision, &f.DurationSeconds,
			&f.AllyCount, &f.EnemyCount, &f.UnknownEvents, &f.UploadedBy, &f.UploadedAt, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fight: %w", err)
	}
	return &f, nil
}

func (r *FightRepository) GetPlayers(ctx context.Context, fightID string) ([]domain.FightPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, account, profession, elite_spec, team, subgroup, ally, role,
			damage_dealt, damage_taken, healing, barrier, cleanses, strips,
			crowd_control, kills, deaths, downs, created_at
		FROM fight_players WHERE fight_id = ? ORDER BY ally DESC, subgroup, account`, fightID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fight players: %w", err)
	}
	defer rows.Close()

	var players []domain.FightPlayer
	for rows.Next() {
		p := domain.FightPlayer{FightID: fightID}
		if err := rows.Scan(&p.Name, &p.Account, &p.Profession, &p.EliteSpec, &p.Team, &p.Subgroup,
			&p.Ally, &p.Role, &p.Stats.DamageDealt, &p.Stats.DamageTaken, &p.Stats.Healing,
			&p.Stats.Barrier, &p.Stats.Cleanses, &p.Stats.Strips, &p.Stats.CrowdControl,
			&p.Stats.Kills, &p.Stats.Deaths, &p.Stats.Downs, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fight player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *FightRepository) ListRecent(ctx context.Context, limit int) ([]domain.Fight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fingerprint, fight_id, build_date, revision, duration_seconds,
			ally_count, enemy_count, unknown_events, uploaded_by, uploaded_at, created_at
		FROM fights ORDER BY uploaded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list fights: %w", err)
	}
	defer rows.Close()

	var fights []domain.Fight
	for rows.Next() {
		var f domain.Fight
		if err := rows.Scan(&f.ID, &f.Fingerprint, &f.FightID, &f.BuildDate, &f.Revision,
			&f.DurationSeconds, &f.AllyCount, &f.EnemyCount, &f.UnknownEvents,
			&f.UploadedBy, &f.UploadedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fight: %w", err)
		}
		fights = append(fights, f)
	}
	return fights, rows.Err()
}
