package ledger

import (
	"errors"

	"github.com/mcdev12/draftroom/go/internal/draft/order"
	"github.com/mcdev12/draftroom/go/internal/draft/turn"
)

// Failure taxonomy for ledger mutations. Append and undo return exactly one
// of these (wrapped); no failure leaves a partial write behind.
var (
	// ErrInvalidConfiguration: the room has no draft order yet.
	ErrInvalidConfiguration = order.ErrInvalidConfiguration

	// ErrOutOfTurn: submitting participant is not on the clock.
	ErrOutOfTurn = turn.ErrOutOfTurn

	// ErrAlreadyDrafted: candidate appears in the ledger already.
	ErrAlreadyDrafted = errors.New("candidate already drafted")

	// ErrTeamConflict: participant already holds a candidate with the same
	// external-team affiliation.
	ErrTeamConflict = errors.New("participant already holds a candidate from that team")

	// ErrForbidden: undo requested without the commissioner role.
	ErrForbidden = errors.New("only the commissioner may undo a pick")

	// ErrEmptyLedger: undo requested on an empty ledger.
	ErrEmptyLedger = errors.New("no picks to undo")

	// ErrDraftComplete: the ledger already holds every pick the
	// configuration allows.
	ErrDraftComplete = errors.New("draft is complete")

	// ErrBusy: the per-room critical section could not be acquired within
	// the bounded wait. Transient; retry with backoff.
	ErrBusy = errors.New("room is busy")
)
