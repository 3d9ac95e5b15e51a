package apperror

import "errors"

var (
	ErrMalformedMove        = errors.New("malformed move text")
	ErrOutOfRange           = errors.New("coordinates out of range")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrNoLegalMove          = errors.New("no legal move on the board")
	ErrNoActiveGame         = errors.New("no active game")
	ErrCapabilityFailed     = errors.New("external capability failed")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed for this game")
)
