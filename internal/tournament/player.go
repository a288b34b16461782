package tournament

import "time"

type Player struct {
	ID           int64     `db:"id"`
	TournamentID int64     `db:"tournament_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	CreatedAt    time.Time `db:"created_at"`
}
