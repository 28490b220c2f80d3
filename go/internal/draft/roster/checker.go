package roster

import (
	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// Eligibility is the outcome of checking a proposed (participant, candidate)
// pick against a ledger snapshot.
type Eligibility string

const (
	Eligible       Eligibility = "ELIGIBLE"
	AlreadyDrafted Eligibility = "ALREADY_DRAFTED"
	TeamConflict   Eligibility = "TEAM_CONFLICT"
)

// Check evaluates whether participantID may draft candidate given the picks
// already in the ledger. catalog maps candidate id to candidate and must
// cover every candidate referenced by picks.
//
// AlreadyDrafted wins over TeamConflict when both would apply, since the
// candidate being gone is the stronger fact. Must be evaluated inside the
// same critical section as the ledger mutation.
func Check(participantID uuid.UUID, candidate models.Candidate, picks []models.Pick, catalog map[uuid.UUID]models.Candidate) Eligibility {
	for _, p := range picks {
		if p.CandidateID == candidate.ID {
			return AlreadyDrafted
		}
	}
	for _, p := range picks {
		if p.ParticipantID != participantID {
			continue
		}
		held, ok := catalog[p.CandidateID]
		if !ok {
			continue
		}
		if held.TeamID == candidate.TeamID {
			return TeamConflict
		}
	}
	return Eligible
}
