package predict

import "fmt"

// Direction is the side of the score a statistic describes: points a team scored (For) or conceded (Against).
type Direction int

const (
	For Direction = iota
	Against
)

// Directions lists both directions in table order.
var Directions = [2]Direction{For, Against}

// DirectionError reports a direction token that is neither "F" nor "A".
type DirectionError struct {
	Token string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("%s is an invalid direction. Must be \"F\" or \"A\"", e.Token)
}

// ParseDirection converts a table suffix into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "F":
		return For, nil
	case "A":
		return Against, nil
	}
	return For, &DirectionError{Token: s}
}

// Complement returns the opposite direction.
// Any value other than For or Against is a programming error and panics.
func (d Direction) Complement() Direction {
	switch d {
	case For:
		return Against
	case Against:
		return For
	}
	panic(&DirectionError{Token: fmt.Sprint(int(d))})
}

func (d Direction) String() string {
	switch d {
	case For:
		return "F"
	case Against:
		return "A"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}
