package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/tournament-registration/internal/clock"
	"github.com/AdamBeresnev/tournament-registration/internal/store"
	"github.com/AdamBeresnev/tournament-registration/internal/tournament"
)

// Repository is the data access the registration rules need.
type Repository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateTournament(ctx context.Context, name string, maxPlayers int, startAt time.Time) (*tournament.Tournament, error)
	GetTournament(ctx context.Context, id int64) (*tournament.Tournament, error)
	GetTournamentByName(ctx context.Context, name string) (*tournament.Tournament, error)
	ListTournaments(ctx context.Context) ([]tournament.Tournament, error)
	GetPlayerByEmail(ctx context.Context, tournamentID int64, email string) (*tournament.Player, error)
	RegisterPlayer(ctx context.Context, tournamentID int64, name, email string) (*tournament.Player, error)
	ListPlayers(ctx context.Context, tournamentID int64) ([]tournament.Player, error)
}

type TournamentService struct {
	repo  Repository
	clock clock.Clock
}

func NewTournamentService(repo Repository, clk clock.Clock) *TournamentService {
	return &TournamentService{repo: repo, clock: clk}
}

type CreateTournamentInput struct {
	Name       string
	MaxPlayers int
	StartAt    time.Time
}

type RegisterPlayerInput struct {
	Name  string
	Email string
}

// CreateTournament checks the name is free and the start lies in the future, then
// persists the tournament. Max players range is validated by the caller.
func (s *TournamentService) CreateTournament(ctx context.Context, in CreateTournamentInput) (TournamentView, error) {
	var created *tournament.Tournament

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetTournamentByName(ctx, in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return tournament.ErrDuplicateName
		}

		if !in.StartAt.After(s.clock.Now()) {
			return tournament.ErrInvalidStartTime
		}

		created, err = s.repo.CreateTournament(ctx, in.Name, in.MaxPlayers, in.StartAt)
		if errors.Is(err, store.ErrUniqueViolation) {
			return tournament.ErrDuplicateName
		}
		return err
	})
	if err != nil {
		return TournamentView{}, err
	}

	slog.InfoContext(ctx, "tournament created", "tournament_id", created.ID, "name", created.Name)
	view := newTournamentView(created)
	view.RegisteredPlayers = 0
	return view, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id int64) (TournamentView, error) {
	t, err := s.repo.GetTournament(ctx, id)
	if err != nil {
		return TournamentView{}, err
	}
	if t == nil {
		return TournamentView{}, tournament.ErrNotFound
	}
	return newTournamentView(t), nil
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]TournamentView, error) {
	tournaments, err := s.repo.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TournamentView, 0, len(tournaments))
	for i := range tournaments {
		views = append(views, newTournamentView(&tournaments[i]))
	}
	return views, nil
}

// RegisterPlayer adds a player and returns the tournament as it stands afterwards.
// Guards run in a fixed order: existence, capacity, then email uniqueness. They share
// one transaction with the insert so two registrations cannot both take the last seat.
func (s *TournamentService) RegisterPlayer(ctx context.Context, tournamentID int64, in RegisterPlayerInput) (TournamentView, error) {
	var updated *tournament.Tournament

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		t, err := s.repo.GetTournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		if t == nil {
			return tournament.ErrNotFound
		}

		if t.IsFull() {
			return tournament.ErrTournamentFull
		}

		existing, err := s.repo.GetPlayerByEmail(ctx, tournamentID, in.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return tournament.ErrDuplicateEmail
		}

		if _, err := s.repo.RegisterPlayer(ctx, tournamentID, in.Name, in.Email); err != nil {
			if errors.Is(err, store.ErrUniqueViolation) {
				return tournament.ErrDuplicateEmail
			}
			return err
		}

		updated, err = s.repo.GetTournament(ctx, tournamentID)
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("tournament %d vanished during registration", tournamentID)
		}
		return nil
	})
	if err != nil {
		return TournamentView{}, err
	}

	slog.InfoContext(ctx, "player registered",
		"tournament_id", tournamentID,
		"registered_players", updated.PlayerCount,
		"max_players", updated.MaxPlayers,
	)
	return newTournamentView(updated), nil
}

func (s *TournamentService) GetTournamentPlayers(ctx context.Context, tournamentID int64) (TournamentPlayers, error) {
	t, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return TournamentPlayers{}, err
	}
	if t == nil {
		return TournamentPlayers{}, tournament.ErrNotFound
	}

	players, err := s.repo.ListPlayers(ctx, tournamentID)
	if err != nil {
		return TournamentPlayers{}, err
	}

	result := TournamentPlayers{
		TournamentID: tournamentID,
		Players:      make([]PlayerView, 0, len(players)),
	}
	for _, p := range players {
		result.Players = append(result.Players, newPlayerView(p))
	}
	return result, nil
}
