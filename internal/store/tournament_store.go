package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/tournament-registration/internal/tournament"
	"github.com/jmoiron/sqlx"
)

const (
	tournamentColumns = `
		t.id, t.name, t.max_players, t.start_at, t.created_at,
		(SELECT COUNT(*) FROM players p WHERE p.tournament_id = t.id) AS player_count
	`
	getTournamentQuery       = "SELECT " + tournamentColumns + " FROM tournaments t WHERE t.id = ?"
	getTournamentByNameQuery = "SELECT " + tournamentColumns + " FROM tournaments t WHERE t.name = ?"
	listTournamentsQuery     = "SELECT " + tournamentColumns + " FROM tournaments t ORDER BY t.id ASC"
	createTournamentQuery    = "INSERT INTO tournaments (name, max_players, start_at) VALUES (?, ?, ?)"

	getPlayerQuery        = "SELECT id, tournament_id, name, email, created_at FROM players WHERE id = ?"
	getPlayerByEmailQuery = `
		SELECT id, tournament_id, name, email, created_at FROM players
		WHERE tournament_id = ?
		AND email = ?
	`
	listPlayersQuery = `
		SELECT id, tournament_id, name, email, created_at FROM players
		WHERE tournament_id = ?
		ORDER BY id ASC
	`
	registerPlayerQuery = "INSERT INTO players (tournament_id, name, email) VALUES (?, ?, ?)"
)

// TournamentStore is plain data access for tournaments and their players. It enforces
// no business rules; store constraint failures come back as ErrUniqueViolation.
type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

// WithTx runs fn in a single transaction. Store calls made with the context handed to
// fn join that transaction, and a nested WithTx reuses it.
func (s *TournamentStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(contextWithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *TournamentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *TournamentStore) CreateTournament(ctx context.Context, name string, maxPlayers int, startAt time.Time) (*tournament.Tournament, error) {
	q := s.querier(ctx)
	res, err := q.ExecContext(ctx, createTournamentQuery, name, maxPlayers, startAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("insert tournament: %w", translate(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read tournament id: %w", err)
	}

	created, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("tournament %d missing after insert", id)
	}
	return created, nil
}

// GetTournament returns nil without an error when no tournament has the id.
func (s *TournamentStore) GetTournament(ctx context.Context, id int64) (*tournament.Tournament, error) {
	var t tournament.Tournament
	err := s.querier(ctx).GetContext(ctx, &t, getTournamentQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tournament %d: %w", id, err)
	}
	return &t, nil
}

func (s *TournamentStore) GetTournamentByName(ctx context.Context, name string) (*tournament.Tournament, error) {
	var t tournament.Tournament
	err := s.querier(ctx).GetContext(ctx, &t, getTournamentByNameQuery, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tournament by name: %w", err)
	}
	return &t, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	tournaments := []tournament.Tournament{}
	if err := s.querier(ctx).SelectContext(ctx, &tournaments, listTournamentsQuery); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *TournamentStore) GetPlayerByEmail(ctx context.Context, tournamentID int64, email string) (*tournament.Player, error) {
	var p tournament.Player
	err := s.querier(ctx).GetContext(ctx, &p, getPlayerByEmailQuery, tournamentID, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player by email: %w", err)
	}
	return &p, nil
}

func (s *TournamentStore) RegisterPlayer(ctx context.Context, tournamentID int64, name, email string) (*tournament.Player, error) {
	q := s.querier(ctx)
	res, err := q.ExecContext(ctx, registerPlayerQuery, tournamentID, name, email)
	if err != nil {
		return nil, fmt.Errorf("insert player: %w", translate(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read player id: %w", err)
	}

	var p tournament.Player
	if err := q.GetContext(ctx, &p, getPlayerQuery, id); err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return &p, nil
}

func (s *TournamentStore) ListPlayers(ctx context.Context, tournamentID int64) ([]tournament.Player, error) {
	players := []tournament.Player{}
	if err := s.querier(ctx).SelectContext(ctx, &players, listPlayersQuery, tournamentID); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}
