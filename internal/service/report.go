package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wvw-tracker/internal/config"
	"wvw-tracker/internal/domain"
	"wvw-tracker/internal/evtc"
	"wvw-tracker/internal/fingerprint"
	"wvw-tracker/internal/repository"
	"wvw-tracker/internal/roles"
	"wvw-tracker/internal/validate"
)

// ReportService owns the upload pipeline: validate, decode, infer roles,
// fingerprint, persist, and assemble the stored report. The decoder stays a
// pure function; everything stateful happens here.
type ReportService struct {
	cfg       *config.Config
	fightRepo *repository.FightRepository
	resolve   roles.Resolver
	logger    zerolog.Logger
}

func NewReportService(cfg *config.Config, fightRepo *repository.FightRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{
		cfg:       cfg,
		fightRepo: fightRepo,
		resolve:   roles.Resolve,
		logger:    logger,
	}
}

// WithResolver swaps the role-inference table. Used by tests and kept
// separate from the constructor so fx wiring stays a plain provide.
func (s *ReportService) WithResolver(r roles.Resolver) *ReportService {
	s.resolve = r
	return s
}

// CreateFromUpload runs one upload through the whole pipeline and returns
// the stored report's id. Duplicate fights (same fingerprint) resolve to the
// already-stored report.
func (s *ReportService) CreateFromUpload(ctx context.Context, filename string, data []byte, uploadedBy string) (string, error) {
	if err := validate.Upload(filename, int64(len(data)), s.cfg.MaxUploadBytes); err != nil {
		return "", err
	}

	start := time.Now()
	log, err := evtc.Parse(data, filename,
		evtc.WithDecompressionCeiling(s.cfg.MaxDecompressedBytes))
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("filename", filename).
		Int("fight_id", int(log.FightID)).
		Int("duration_seconds", log.DurationSeconds).
		Int("allies", len(log.Allies)).
		Int("enemies", len(log.Enemies)).
		Int("events", log.Diagnostics.Events).
		Int("unknown_events", log.Diagnostics.UnknownEvents).
		Int("unresolved_refs", log.Diagnostics.UnresolvedRefs).
		Int64("decode_ms", time.Since(start).Milliseconds()).
		Msg("log decoded")

	fight := &domain.Fight{
		Fingerprint:     fingerprint.ForLog(log),
		FightID:         int(log.FightID),
		BuildDate:       log.BuildDate,
		Revision:        int(log.Revision),
		DurationSeconds: log.DurationSeconds,
		AllyCount:       len(log.Allies),
		EnemyCount:      len(log.Enemies),
		UnknownEvents:   log.Diagnostics.UnknownEvents,
		UploadedBy:      uploadedBy,
		UploadedAt:      time.Now(),
	}

	players := make([]domain.FightPlayer, 0, len(log.Allies)+len(log.Enemies))
	for _, p := range log.Allies {
		players = append(players, s.toFightPlayer(p))
	}
	for _, p := range log.Enemies {
		players = append(players, s.toFightPlayer(p))
	}

	id, err := s.fightRepo.Save(ctx, fight, players)
	if err != nil {
		return "", fmt.Errorf("failed to persist fight: %w", err)
	}
	return id, nil
}

func (s *ReportService) toFightPlayer(p evtc.ParsedPlayer) domain.FightPlayer {
	return domain.FightPlayer{
		Name:       p.Name,
		Account:    p.Account,
		Profession: int(p.Profession),
		EliteSpec:  int(p.EliteSpec),
		Team:       int(p.Team),
		Subgroup:   int(p.Subgroup),
		Ally:       p.Ally,
		Role:       string(s.resolve(p.Profession, p.EliteSpec)),
		Stats:      p.Stats,
	}
}

// GetReport fetches fight and participants concurrently and splits players
// back into ally/enemy lists.
func (s *ReportService) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	var (
		fight   *domain.Fight
		players []domain.FightPlayer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fight, err = s.fightRepo.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.fightRepo.GetPlayers(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.Report{Fight: *fight}
	for _, p := range players {
		if p.Ally {
			report.Allies = append(report.Allies, p)
		} else {
			report.Enemies = append(report.Enemies, p)
		}
	}
	return report, nil
}

func (s *ReportService) ListRecent(ctx context.Context, limit int) ([]domain.Fight, error) {
	return s.fightRepo.ListRecent(ctx, limit)
}
