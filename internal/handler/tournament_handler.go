package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AdamBeresnev/tournament-registration/internal/httputil"
	"github.com/AdamBeresnev/tournament-registration/internal/service"
	"github.com/AdamBeresnev/tournament-registration/internal/tournament"
	"github.com/AdamBeresnev/tournament-registration/internal/utils"
	"github.com/go-chi/chi/v5"
)

// TournamentRegistrar is the service surface the HTTP layer calls into.
type TournamentRegistrar interface {
	CreateTournament(ctx context.Context, in service.CreateTournamentInput) (service.TournamentView, error)
	GetTournament(ctx context.Context, id int64) (service.TournamentView, error)
	ListTournaments(ctx context.Context) ([]service.TournamentView, error)
	RegisterPlayer(ctx context.Context, tournamentID int64, in service.RegisterPlayerInput) (service.TournamentView, error)
	GetTournamentPlayers(ctx context.Context, tournamentID int64) (service.TournamentPlayers, error)
}

type TournamentHandler struct {
	svc TournamentRegistrar
}

func NewTournamentHandler(svc TournamentRegistrar) *TournamentHandler {
	return &TournamentHandler{svc: svc}
}

// Routes is meant to be mounted at /tournaments.
func (h *TournamentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListTournaments)
	r.Post("/", h.CreateTournament)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetTournament)
		r.Post("/register", h.RegisterPlayer)
		r.Get("/players", h.GetTournamentPlayers)
	})
	return r
}

type createTournamentRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	MaxPlayers *int   `json:"max_players" validate:"required,min=2,max=100"`
	StartAt    string `json:"start_at" validate:"required,iso_datetime"`
}

type registerPlayerRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Email string `json:"email" validate:"required,email,max=255"`
}

func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	startAt, err := parseDateTime(req.StartAt)
	if err != nil {
		httputil.UnprocessableEntity(w, []httputil.FieldError{{Field: "start_at", Message: "must be an ISO 8601 datetime"}})
		return
	}

	view, err := h.svc.CreateTournament(r.Context(), service.CreateTournamentInput{
		Name:       req.Name,
		MaxPlayers: utils.OrZero(req.MaxPlayers),
		StartAt:    startAt,
	})
	if err != nil {
		writeServiceError(w, "Failed to create tournament", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListTournaments(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to list tournaments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.svc.GetTournament(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get tournament", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *TournamentHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentIDParam(w, r)
	if !ok {
		return
	}
	var req registerPlayerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.svc.RegisterPlayer(r.Context(), id, service.RegisterPlayerInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeServiceError(w, "Failed to register player", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *TournamentHandler) GetTournamentPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := tournamentIDParam(w, r)
	if !ok {
		return
	}

	players, err := h.svc.GetTournamentPlayers(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get tournament players", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, players)
}

func tournamentIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.UnprocessableEntity(w, []httputil.FieldError{{Field: "tournament_id", Message: "must be an integer"}})
		return 0, false
	}
	return id, true
}

// Client-facing messages for each domain error.
var domainErrorMessages = []struct {
	err error
	msg string
}{
	{tournament.ErrDuplicateName, "There is tournament with this name already!"},
	{tournament.ErrInvalidStartTime, "Tournament can't start in the past"},
	{tournament.ErrTournamentFull, "Tournament is full"},
	{tournament.ErrDuplicateEmail, "Email already registered in this tournament"},
}

func writeServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, tournament.ErrNotFound) {
		httputil.NotFound(w, "Tournament not found", err)
		return
	}
	for _, m := range domainErrorMessages {
		if errors.Is(err, m.err) {
			httputil.BadRequest(w, m.msg, err)
			return
		}
	}
	httputil.InternalServerError(w, msg, err)
}
