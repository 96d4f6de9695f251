package sokoban

import "errors"

var (
	// ErrMalformedLevel is returned when a level encoding cannot be turned into
	// a playable state: no rows, no player start, several player starts or an
	// unknown symbol.
	ErrMalformedLevel = errors.New("sokoban: malformed level")

	// ErrInvalidDirection is returned by Move for anything other than the four
	// cardinal unit vectors.
	ErrInvalidDirection = errors.New("sokoban: invalid direction")
)
