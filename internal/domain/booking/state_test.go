package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	cases := []struct {
		from    State
		to      State
		allowed bool
	}{
		{StateWaiting, StateApproved, true},
		{StateWaiting, StateRejected, true},
		{StateWaiting, StateCanceled, true},
		{StateApproved, StateCanceled, true},
		{StateApproved, StateRejected, false},
		{StateApproved, StateWaiting, false},
		{StateRejected, StateApproved, false},
		{StateRejected, StateCanceled, false},
		{StateCanceled, StateWaiting, false},
		{StateCanceled, StateApproved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateWaiting.IsTerminal())
	assert.False(t, StateApproved.IsTerminal())
	assert.True(t, StateRejected.IsTerminal())
	assert.True(t, StateCanceled.IsTerminal())
}

func TestParseState(t *testing.T) {
	s, err := ParseState("approved")
	require.NoError(t, err)
	assert.Equal(t, StateApproved, s)

	_, err = ParseState("delivered")
	require.Error(t, err)
}
