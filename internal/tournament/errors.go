package tournament

import "errors"

var (
	ErrDuplicateName    = errors.New("tournament name already taken")
	ErrInvalidStartTime = errors.New("tournament start time is not in the future")
	ErrNotFound         = errors.New("tournament not found")
	ErrTournamentFull   = errors.New("tournament is full")
	ErrDuplicateEmail   = errors.New("email already registered in tournament")
)
