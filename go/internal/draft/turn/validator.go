package turn

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/order"
)

// ErrOutOfTurn is returned when the submitting participant is not on the clock.
var ErrOutOfTurn = errors.New("participant is not on the clock")

// OnClock returns the participant authorized to make the next pick given the
// ledger length at this instant.
func OnClock(ledgerLength int, draftOrder []uuid.UUID) (uuid.UUID, error) {
	return order.ResolveParticipant(ledgerLength+1, draftOrder)
}

// UpNext returns the participant who picks after the one on the clock.
func UpNext(ledgerLength int, draftOrder []uuid.UUID) (uuid.UUID, error) {
	return order.ResolveParticipant(ledgerLength+2, draftOrder)
}

// Validate checks a submission against the authoritative ledger length.
// The length must be read under the same critical section that commits the
// pick; a length cached by the caller is not authoritative.
func Validate(participantID uuid.UUID, authoritativeLength int, draftOrder []uuid.UUID) error {
	onClock, err := OnClock(authoritativeLength, draftOrder)
	if err != nil {
		return err
	}
	if participantID != onClock {
		return ErrOutOfTurn
	}
	return nil
}
