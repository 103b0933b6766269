package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/no-draw-tracker/internal/domain/standing"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/resilience"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
)

const maxRefreshBodyBytes = 64 << 10

// BreakerReporter exposes per-host circuit breaker state for /healthz.
type BreakerReporter interface {
	BreakerStates() map[string]resilience.CircuitState
}

type Handler struct {
	standingsService *usecase.StandingsService
	breakers         BreakerReporter
	logger           *logging.Logger
	validator        *validator.Validate
}

// NewHandler wires the HTTP handlers. breakers may be nil.
func NewHandler(standingsService *usecase.StandingsService, breakers BreakerReporter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		breakers:         breakers,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type teamsQuery struct {
	Competition string `validate:"required"`
	MinGames    int    `validate:"gte=0"`
}

type teamsResponse struct {
	Competition string                `json:"competition"`
	MinGames    int                   `json:"minGames"`
	Teams       []standing.TeamRecord `json:"teams"`
	CachedAt    *time.Time            `json:"cachedAt"`
}

type refreshRequest struct {
	Competitions []string `json:"competitions" validate:"omitempty,max=50,dive,max=100"`
	Leagues      []string `json:"leagues" validate:"omitempty,max=50,dive,max=100"`
}

type healthResponse struct {
	Status       string                             `json:"status"`
	CachedAt     *time.Time                         `json:"cachedAt"`
	Competitions []standing.CompetitionOutcome      `json:"competitions,omitempty"`
	Breakers     map[string]resilience.CircuitState `json:"breakers,omitempty"`
}

type refreshResponse struct {
	Message      string   `json:"message"`
	Status       string   `json:"status"`
	Competitions []string `json:"competitions"`
	TotalTeams   int      `json:"totalTeams"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthResponse{Status: "ok"}
	if snapshot, ok := h.standingsService.Cached(); ok {
		cachedAt := snapshot.FetchedAt.UTC()
		resp.CachedAt = &cachedAt
		resp.Competitions = snapshot.Competitions
	}
	if h.breakers != nil {
		if states := h.breakers.BreakerStates(); len(states) > 0 {
			resp.Breakers = states
		}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// ListTeams serves GET /api/teams?league=<name|all>&minGames=<int>.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := parseTeamsQuery(r)
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.standingsService.Snapshot(ctx, false)
	if err != nil {
		h.logger.ErrorContext(ctx, "load standings snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	teams := usecase.Query(snapshot, usecase.QueryInput{
		Competition: query.Competition,
		MinStreak:   query.MinGames,
	})

	resp := teamsResponse{
		Competition: query.Competition,
		MinGames:    query.MinGames,
		Teams:       teams,
	}
	if !snapshot.IsZero() {
		cachedAt := snapshot.FetchedAt.UTC()
		resp.CachedAt = &cachedAt
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Refresh serves POST /api/refresh with an optional {"competitions": [...]} body.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Refresh")
	defer span.End()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(ctx, w, errMethodNotAllowed)
		return
	}

	var req refreshRequest
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRefreshBodyBytes))
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	names := req.Competitions
	if len(names) == 0 {
		names = req.Leagues
	}

	result, err := h.standingsService.Refresh(ctx, names)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	competitions := result.Competitions
	if competitions == nil {
		competitions = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, refreshResponse{
		Message:      "Refresh completed",
		Status:       "success",
		Competitions: competitions,
		TotalTeams:   result.TotalTeams,
	})
}

// parseTeamsQuery accepts "league" or "competition". A minGames value that is not
// an integer or is negative counts as 0.
func parseTeamsQuery(r *http.Request) teamsQuery {
	values := r.URL.Query()

	competition := values.Get("league")
	if competition == "" {
		competition = values.Get("competition")
	}
	if competition == "" {
		competition = usecase.AllCompetitions
	}

	minGames, err := strconv.Atoi(strings.TrimSpace(values.Get("minGames")))
	if err != nil || minGames < 0 {
		minGames = 0
	}

	return teamsQuery{Competition: competition, MinGames: minGames}
}
