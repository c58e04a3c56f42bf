package state

// Season is one of the four quarters a game is divided into. Each season
// has its own scoring weights and its own time budget before it ends.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

// Time returns the season's time budget: the cumulative card time after
// which the season ends and scoring is applied.
func (s Season) Time() int {
	switch s {
	case Spring, Summer:
		return 8
	case Fall:
		return 7
	default: // Winter
		return 6
	}
}

// Next returns the season following s, or false after Winter (the game ends).
func (s Season) Next() (Season, bool) {
	switch s {
	case Spring:
		return Summer, true
	case Summer:
		return Fall, true
	case Fall:
		return Winter, true
	default: // Winter
		return 0, false
	}
}

// String names the season in lowercase English, for logging. These are not
// all the wire protocol's names (it uses "sommer" and "autmn").
func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	default:
		return "winter"
	}
}
