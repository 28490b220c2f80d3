package order

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidConfiguration is returned when a room has no draft order set.
var ErrInvalidConfiguration = errors.New("invalid draft configuration")

// ResolveParticipant maps an overall pick number (1-based) onto the round-1
// draft order. Rounds 2 and 3 both traverse in reverse, round 4 forward,
// and from round 5 on every odd round reverses. This is the house variant
// of third-round reversal, not a classic alternating snake.
func ResolveParticipant(pickNumber int, draftOrder []uuid.UUID) (uuid.UUID, error) {
	n := len(draftOrder)
	if n == 0 {
		return uuid.Nil, ErrInvalidConfiguration
	}
	if pickNumber < 1 {
		return uuid.Nil, errors.New("pick number must be >= 1")
	}

	round := (pickNumber-1)/n + 1
	idx := (pickNumber - 1) % n
	if reversed(round) {
		idx = n - 1 - idx
	}
	return draftOrder[idx], nil
}

// RoundAndPick converts an overall pick number into (round, pick-in-round),
// both 1-based.
func RoundAndPick(pickNumber, numParticipants int) (round, pick int) {
	round = (pickNumber-1)/numParticipants + 1
	pick = (pickNumber-1)%numParticipants + 1
	return round, pick
}

// reversed reports whether a round traverses the draft order back-to-front.
func reversed(round int) bool {
	if round == 2 || round == 3 {
		return true
	}
	return round >= 5 && round%2 == 1
}
