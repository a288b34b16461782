package service

import (
	"context"
	"time"

	"github.com/AdamBeresnev/tournament-registration/internal/tournament"
)

type fakeRepo struct {
	tournaments []tournament.Tournament
	players     []tournament.Player
	nextID      int64

	// Forces the next insert to fail as if a concurrent writer won the race.
	insertErr error
	calls     []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls = append(r.calls, "WithTx")
	return fn(ctx)
}

func (r *fakeRepo) count(tournamentID int64) int {
	n := 0
	for _, p := range r.players {
		if p.TournamentID == tournamentID {
			n++
		}
	}
	return n
}

func (r *fakeRepo) CreateTournament(_ context.Context, name string, maxPlayers int, startAt time.Time) (*tournament.Tournament, error) {
	r.calls = append(r.calls, "CreateTournament")
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	t := tournament.Tournament{ID: r.nextID, Name: name, MaxPlayers: maxPlayers, StartAt: startAt}
	r.nextID++
	r.tournaments = append(r.tournaments, t)
	return &t, nil
}

func (r *fakeRepo) GetTournament(_ context.Context, id int64) (*tournament.Tournament, error) {
	r.calls = append(r.calls, "GetTournament")
	for _, t := range r.tournaments {
		if t.ID == id {
			t.PlayerCount = r.count(id)
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetTournamentByName(_ context.Context, name string) (*tournament.Tournament, error) {
	r.calls = append(r.calls, "GetTournamentByName")
	for _, t := range r.tournaments {
		if t.Name == name {
			t.PlayerCount = r.count(t.ID)
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListTournaments(_ context.Context) ([]tournament.Tournament, error) {
	r.calls = append(r.calls, "ListTournaments")
	out := make([]tournament.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		t.PlayerCount = r.count(t.ID)
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeRepo) GetPlayerByEmail(_ context.Context, tournamentID int64, email string) (*tournament.Player, error) {
	r.calls = append(r.calls, "GetPlayerByEmail")
	for _, p := range r.players {
		if p.TournamentID == tournamentID && p.Email == email {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) RegisterPlayer(_ context.Context, tournamentID int64, name, email string) (*tournament.Player, error) {
	r.calls = append(r.calls, "RegisterPlayer")
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	p := tournament.Player{ID: r.nextID, TournamentID: tournamentID, Name: name, Email: email}
	r.nextID++
	r.players = append(r.players, p)
	return &p, nil
}

func (r *fakeRepo) ListPlayers(_ context.Context, tournamentID int64) ([]tournament.Player, error) {
	r.calls = append(r.calls, "ListPlayers")
	var out []tournament.Player
	for _, p := range r.players {
		if p.TournamentID == tournamentID {
			out = append(out, p)
		}
	}
	return out, nil
}
