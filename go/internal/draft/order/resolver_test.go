package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestResolveParticipantFourSlots(t *testing.T) {
	draftOrder := newOrder(4)
	a, b, c, d := draftOrder[0], draftOrder[1], draftOrder[2], draftOrder[3]

	// Rounds 1-5 for four participants: forward, reverse, reverse,
	// forward, reverse.
	want := []uuid.UUID{
		a, b, c, d, // round 1
		d, c, b, a, // round 2
		d, c, b, a, // round 3
		a, b, c, d, // round 4
		d, c, b, a, // round 5
	}

	for i, expected := range want {
		pickNumber := i + 1
		got, err := ResolveParticipant(pickNumber, draftOrder)
		require.NoError(t, err)
		assert.Equal(t, expected, got, "pick %d", pickNumber)
	}
}

func TestResolveParticipantLaterRounds(t *testing.T) {
	draftOrder := newOrder(3)

	cases := []struct {
		name       string
		pickNumber int
		wantIdx    int
	}{
		{name: "round 6 forward first", pickNumber: 16, wantIdx: 0},
		{name: "round 6 forward last", pickNumber: 18, wantIdx: 2},
		{name: "round 7 reverse first", pickNumber: 19, wantIdx: 2},
		{name: "round 7 reverse last", pickNumber: 21, wantIdx: 0},
		{name: "round 9 reverse middle", pickNumber: 26, wantIdx: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveParticipant(tc.pickNumber, draftOrder)
			require.NoError(t, err)
			assert.Equal(t, draftOrder[tc.wantIdx], got)
		})
	}
}

func TestResolveParticipantDeterministic(t *testing.T) {
	draftOrder := newOrder(5)
	for pick := 1; pick <= 50; pick++ {
		first, err := ResolveParticipant(pick, draftOrder)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := ResolveParticipant(pick, draftOrder)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestResolveParticipantSingleSlot(t *testing.T) {
	draftOrder := newOrder(1)
	for pick := 1; pick <= 10; pick++ {
		got, err := ResolveParticipant(pick, draftOrder)
		require.NoError(t, err)
		assert.Equal(t, draftOrder[0], got)
	}
}

func TestResolveParticipantEmptyOrder(t *testing.T) {
	_, err := ResolveParticipant(1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestResolveParticipantBadPickNumber(t *testing.T) {
	_, err := ResolveParticipant(0, newOrder(2))
	assert.Error(t, err)
}

func TestRoundAndPick(t *testing.T) {
	cases := []struct {
		pickNumber int
		n          int
		wantRound  int
		wantPick   int
	}{
		{1, 4, 1, 1},
		{4, 4, 1, 4},
		{5, 4, 2, 1},
		{8, 4, 2, 4},
		{9, 4, 3, 1},
		{17, 4, 5, 1},
		{7, 1, 7, 1},
	}

	for _, tc := range cases {
		round, pick := RoundAndPick(tc.pickNumber, tc.n)
		assert.Equal(t, tc.wantRound, round, "round for pick %d of %d", tc.pickNumber, tc.n)
		assert.Equal(t, tc.wantPick, pick, "pick-in-round for pick %d of %d", tc.pickNumber, tc.n)
	}
}
