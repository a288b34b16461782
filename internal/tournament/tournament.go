package tournament

import "time"

type Tournament struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	MaxPlayers int       `db:"max_players"`
	StartAt    time.Time `db:"start_at"`
	CreatedAt  time.Time `db:"created_at"`

	// Counted from the players table on every read, never stored
	PlayerCount int `db:"player_count"`
}

func (t *Tournament) IsFull() bool {
	return t.PlayerCount >= t.MaxPlayers
}
