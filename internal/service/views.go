package service

import (
	"time"

	"github.com/AdamBeresnev/tournament-registration/internal/tournament"
)

type TournamentView struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	MaxPlayers        int       `json:"max_players"`
	StartAt           time.Time `json:"start_at"`
	RegisteredPlayers int       `json:"registered_players"`
}

type PlayerView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TournamentPlayers struct {
	TournamentID int64        `json:"tournament_id"`
	Players      []PlayerView `json:"players"`
}

func newTournamentView(t *tournament.Tournament) TournamentView {
	return TournamentView{
		ID:                t.ID,
		Name:              t.Name,
		MaxPlayers:        t.MaxPlayers,
		StartAt:           t.StartAt,
		RegisteredPlayers: t.PlayerCount,
	}
}

func newPlayerView(p tournament.Player) PlayerView {
	return PlayerView{ID: p.ID, Name: p.Name, Email: p.Email}
}
