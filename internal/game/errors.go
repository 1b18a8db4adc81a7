package game

import "errors"

// Every failure surfaced through a request acknowledgment maps to one of
// these sentinels. Broadcasts never carry errors.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room full")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientPlayers = errors.New("need 2 players minimum")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrInvalidSector       = errors.New("invalid sector")
	ErrSectorLocked        = errors.New("sector locked")
	ErrNegativeAmount      = errors.New("negative amount")
	ErrBudgetExceeded      = errors.New("total exceeds budget")
	ErrNotJoined           = errors.New("not joined")
	ErrInvalidTip          = errors.New("invalid tip")
	ErrTargetNotFound      = errors.New("tip target not found")
)
