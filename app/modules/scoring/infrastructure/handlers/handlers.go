package scoringhandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/scramble-live/scoreboard/pkg/apperrors"
	"github.com/scramble-live/scoreboard/pkg/httpio"

	displayservice "github.com/scramble-live/scoreboard/app/modules/display/application"
	scoringservice "github.com/scramble-live/scoreboard/app/modules/scoring/application"
)

// ScoringHandlers is the HTTP surface over the scoring service. The admin
// routes trust the transport boundary; auth terminates at the reverse proxy.
type ScoringHandlers struct {
	service  scoringservice.Service
	tracker  *displayservice.Tracker
	logger   *slog.Logger
	validate *validator.Validate
}

func NewScoringHandlers(service scoringservice.Service, tracker *displayservice.Tracker, logger *slog.Logger) *ScoringHandlers {
	return &ScoringHandlers{
		service:  service,
		tracker:  tracker,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type scoreRequest struct {
	HoleNumber int `json:"hole_number" validate:"required"`
	Strokes    int `json:"strokes" validate:"required,min=1,max=20"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft live completed"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type createTeamRequest struct {
	TeamName string   `json:"team_name" validate:"required"`
	Players  []string `json:"players"`
}

type bulkTeamsRequest struct {
	Rows string `json:"rows" validate:"required"`
}

// checkRequest runs struct validation and maps the first failure onto the
// wire message the original API used for that field.
func (h *ScoringHandlers) checkRequest(req any) error {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Field() {
		case "HoleNumber":
			return apperrors.Validation("hole_number and strokes required")
		case "Strokes":
			if fe.Tag() == "required" {
				return apperrors.Validation("hole_number and strokes required")
			}
			return apperrors.Validation("Strokes must be 1-20")
		case "Status":
			return apperrors.Validation("status must be one of: draft, live, completed")
		case "Visible":
			return apperrors.Validation("visible (boolean) required")
		case "TeamName":
			return apperrors.Validation("team_name required")
		case "Rows":
			return apperrors.Validation("rows string required")
		}
	}
	return apperrors.Validation("invalid request body")
}

// SubmitHoleScore handles POST /api/score/{token}/hole.
func (h *ScoringHandlers) SubmitHoleScore(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req scoreRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	scores, err := h.service.SubmitHoleScore(r.Context(), token, req.HoleNumber, req.Strokes)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success bool                      `json:"success"`
		Scores  scoringservice.ScoresMap `json:"scores"`
	}{Success: true, Scores: scores})
}

// SubmitFinal handles POST /api/score/{token}/submit.
func (h *ScoringHandlers) SubmitFinal(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	lockedAt, err := h.service.SubmitFinal(r.Context(), token)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success  bool      `json:"success"`
		LockedAt time.Time `json:"locked_at"`
	}{Success: true, LockedAt: lockedAt})
}

// GetScoreContext handles GET /api/score/{token}/context.
func (h *ScoringHandlers) GetScoreContext(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	view, err := h.service.GetScoreContext(r.Context(), token)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	httpio.WriteJSON(w, http.StatusOK, view)
}

// GetLeaderboard handles GET /api/public/org/{orgSlug}/event/{eventSlug}/leaderboard.
// Polled every few seconds by every spectator; the short cache header keeps
// the DB read rate bounded regardless of crowd size.
func (h *ScoringHandlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	orgSlug := chi.URLParam(r, "orgSlug")
	eventSlug := chi.URLParam(r, "eventSlug")

	view, err := h.service.GetLeaderboard(r.Context(), orgSlug, eventSlug)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	if !view.Hidden && h.tracker != nil {
		key := orgSlug + "/" + eventSlug
		h.tracker.Observe(key, view.Teams)
		view.RecentlyUpdated = h.tracker.Highlights(key)
	}

	w.Header().Set("Cache-Control", "public, max-age=5")
	httpio.WriteJSON(w, http.StatusOK, view)
}

// GetLeaderboardChart handles GET .../leaderboard/chart.png.
func (h *ScoringHandlers) GetLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	orgSlug := chi.URLParam(r, "orgSlug")
	eventSlug := chi.URLParam(r, "eventSlug")

	view, err := h.service.GetLeaderboard(r.Context(), orgSlug, eventSlug)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	if view.Hidden {
		httpio.WriteError(w, apperrors.NotFound("Leaderboard is hidden"))
		return
	}

	png, err := scoringservice.RenderLeaderboardChart(view.Event.Name, view.Teams)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=5")
	_, _ = w.Write(png)
}

// SetEventStatus handles POST /api/admin/events/{eventID}/status.
func (h *ScoringHandlers) SetEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req statusRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	result, err := h.service.SetEventStatus(r.Context(), eventID, req.Status)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success  bool       `json:"success"`
		Status   string     `json:"status"`
		LockedAt *time.Time `json:"locked_at"`
	}{Success: true, Status: result.Status, LockedAt: result.LockedAt})
}

// SetLeaderboardVisibility handles POST /api/admin/events/{eventID}/leaderboard-visibility.
func (h *ScoringHandlers) SetLeaderboardVisibility(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req visibilityRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	if err := h.service.SetLeaderboardVisibility(r.Context(), eventID, *req.Visible); err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success            bool `json:"success"`
		LeaderboardVisible bool `json:"leaderboard_visible"`
	}{Success: true, LeaderboardVisible: *req.Visible})
}

// CreateTeam handles POST /api/admin/events/{eventID}/teams.
func (h *ScoringHandlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req createTeamRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	created, err := h.service.CreateTeam(r.Context(), eventID, req.TeamName, req.Players)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	httpio.WriteJSON(w, http.StatusCreated, created)
}

// ListTeams handles GET /api/admin/events/{eventID}/teams.
func (h *ScoringHandlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	teams, err := h.service.ListTeams(r.Context(), eventID)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	httpio.WriteJSON(w, http.StatusOK, teams)
}

// BulkCreateTeams handles POST /api/admin/events/{eventID}/teams/bulk.
func (h *ScoringHandlers) BulkCreateTeams(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var req bulkTeamsRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	result, err := h.service.BulkCreateTeams(r.Context(), eventID, req.Rows)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	httpio.WriteJSON(w, http.StatusCreated, result)
}

// AdminOverrideScore handles POST /api/admin/events/{eventID}/teams/{teamID}/override.
func (h *ScoringHandlers) AdminOverrideScore(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	teamID := chi.URLParam(r, "teamID")

	var req scoreRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.WriteError(w, err)
		return
	}
	if err := h.checkRequest(req); err != nil {
		httpio.WriteError(w, err)
		return
	}

	result, err := h.service.AdminOverrideScore(r.Context(), eventID, teamID, req.HoleNumber, req.Strokes)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success    bool   `json:"success"`
		HoleNumber int    `json:"hole_number"`
		Strokes    int    `json:"strokes"`
		UpdatedBy  string `json:"updated_by"`
	}{Success: true, HoleNumber: result.HoleNumber, Strokes: result.Strokes, UpdatedBy: result.UpdatedBy})
}

// AdminUnlockTeam handles POST /api/admin/events/{eventID}/teams/{teamID}/unlock.
func (h *ScoringHandlers) AdminUnlockTeam(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	teamID := chi.URLParam(r, "teamID")

	if err := h.service.AdminUnlockTeam(r.Context(), eventID, teamID); err != nil {
		httpio.WriteError(w, err)
		return
	}

	httpio.WriteJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Unlocked string `json:"unlocked"`
	}{Success: true, Unlocked: teamID})
}

// GetEventDetail handles GET /api/admin/events/{eventID}.
func (h *ScoringHandlers) GetEventDetail(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	detail, err := h.service.GetEventDetail(r.Context(), eventID)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}
	httpio.WriteJSON(w, http.StatusOK, detail)
}

// ExportLeaderboard handles GET /api/admin/events/{eventID}/export.xlsx.
func (h *ScoringHandlers) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	data, err := h.service.ExportLeaderboardXLSX(r.Context(), eventID)
	if err != nil {
		httpio.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leaderboard-"+eventID+".xlsx"))
	_, _ = w.Write(data)
}
