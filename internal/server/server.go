package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"wvw-tracker/internal/config"
	"wvw-tracker/internal/constants"
	"wvw-tracker/internal/domain"
	"wvw-tracker/internal/evtc"
	"wvw-tracker/internal/repository"
	"wvw-tracker/internal/service"
	"wvw-tracker/internal/validate"
)

// Server exposes the upload and report endpoints as plain JSON over HTTP.
type Server struct {
	cfg        *config.Config
	reportSvc  *service.ReportService
	accountSvc *service.AccountService
	logger     zerolog.Logger
}

func New(cfg *config.Config, reportSvc *service.ReportService, accountSvc *service.AccountService, logger zerolog.Logger) *Server {
	return &Server{cfg: cfg, reportSvc: reportSvc, accountSvc: accountSvc, logger: logger}
}

func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/reports", s.handleUpload)
	mux.HandleFunc("GET /api/v1/reports/{id}", s.handleGetReport)
	mux.HandleFunc("GET /api/v1/reports", s.handleListReports)
	mux.HandleFunc("POST /api/v1/accounts/link", s.handleLinkAccount)
}

type uploadResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "failed to read upload"})
		return
	}

	uploadedBy := r.FormValue("account")

	id, err := s.reportSvc.CreateFromUpload(r.Context(), header.Filename, data, uploadedBy)
	if err != nil {
		s.writeUploadError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/reports/"+id)
	writeJSON(w, http.StatusCreated, uploadResponse{ID: id})
}

// writeUploadError maps pipeline failures onto status codes: validation
// problems are the client's fault, structural decode failures mean the file
// is not a recognizable log, anything else is ours.
func (s *Server) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	var uploadErr *validate.UploadError
	if errors.As(err, &uploadErr) {
		writeError(w, http.StatusBadRequest, errorResponse{Error: uploadErr.Error()})
		return
	}

	var parseErr *evtc.ParseError
	if errors.As(err, &parseErr) {
		zerolog.Ctx(r.Context()).Warn().
			Str("kind", parseErr.Kind.String()).
			Int("offset", parseErr.Offset).
			Int("expected", parseErr.Expected).
			Int("actual", parseErr.Actual).
			Msg("upload not recognized as a combat log")
		writeError(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "file not recognized as a combat log",
			Kind:   parseErr.Kind.String(),
			Offset: parseErr.Offset,
		})
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("upload pipeline failed")
	writeError(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reportSvc.GetReport(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, errorResponse{Error: "report not found"})
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load report")
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	fights, err := s.reportSvc.ListRecent(r.Context(), constants.RecentReportsLimit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list reports")
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	out := make([]fightResponse, 0, len(fights))
	for i := range fights {
		out = append(out, toFightResponse(&fights[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type linkRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleLinkAccount(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIKey == "" {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "api_key is required"})
		return
	}

	linked, err := s.accountSvc.Link(r.Context(), req.APIKey)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("account link failed")
		writeError(w, http.StatusUnprocessableEntity, errorResponse{Error: "api key could not be verified"})
		return
	}
	writeJSON(w, http.StatusOK, linked)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}

type fightResponse struct {
	ID              string `json:"id"`
	FightID         int    `json:"fight_id"`
	DurationSeconds int    `json:"duration_seconds"`
	AllyCount       int    `json:"ally_count"`
	EnemyCount      int    `json:"enemy_count"`
	UploadedAt      string `json:"uploaded_at"`
}

type playerResponse struct {
	Name       string `json:"name"`
	Account    string `json:"account"`
	Profession int    `json:"profession"`
	EliteSpec  int    `json:"elite_spec"`
	Subgroup   int    `json:"subgroup"`
	Role       string `json:"role"`

	DamageDealt  int64 `json:"damage_dealt"`
	DamageTaken  int64 `json:"damage_taken"`
	Healing      int64 `json:"healing"`
	Barrier      int64 `json:"barrier"`
	Cleanses     int64 `json:"cleanses"`
	Strips       int64 `json:"strips"`
	CrowdControl int64 `json:"crowd_control"`
	Kills        int64 `json:"kills"`
	Deaths       int64 `json:"deaths"`
	Downs        int64 `json:"downs"`
}

type reportResponse struct {
	Fight   fightResponse    `json:"fight"`
	Allies  []playerResponse `json:"allies"`
	Enemies []playerResponse `json:"enemies"`
}

func toFightResponse(f *domain.Fight) fightResponse {
	return fightResponse{
		ID:              f.ID,
		FightID:         f.FightID,
		DurationSeconds: f.DurationSeconds,
		AllyCount:       f.AllyCount,
		EnemyCount:      f.EnemyCount,
		UploadedAt:      f.UploadedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toPlayerResponse(p *domain.FightPlayer) playerResponse {
	return playerResponse{
		Name:         p.Name,
		Account:      p.Account,
		Profession:   p.Profession,
		EliteSpec:    p.EliteSpec,
		Subgroup:     p.Subgroup,
		Role:         p.Role,
		DamageDealt:  p.Stats.DamageDealt,
		DamageTaken:  p.Stats.DamageTaken,
		Healing:      p.Stats.Healing,
		Barrier:      p.Stats.Barrier,
		Cleanses:     p.Stats.Cleanses,
		Strips:       p.Stats.Strips,
		CrowdControl: p.Stats.CrowdControl,
		Kills:        p.Stats.Kills,
		Deaths:       p.Stats.Deaths,
		Downs:        p.Stats.Downs,
	}
}

func toReportResponse(r *domain.Report) reportResponse {
	out := reportResponse{Fight: toFightResponse(&r.Fight)}
	for i := range r.Allies {
		out.Allies = append(out.Allies, toPlayerResponse(&r.Allies[i]))
	}
	for i := range r.Enemies {
		out.Enemies = append(out.Enemies, toPlayerResponse(&r.Enemies[i]))
	}
	return out
}
