// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/node/internal/report"
)

/*
TestFlow_HappyPath verifies selecting, confirming and finishing a report.
*/
func TestFlow_HappyPath(t *testing.T) {
	state := report.Start()
	assert.Equal(t, report.PhaseSelecting, state.Phase)

	state, err := state.Select(report.ReasonSpam)
	require.NoError(t, err)

	state, err = state.Next()
	require.NoError(t, err)
	assert.Equal(t, report.PhaseConfirming, state.Phase)

	state, err = state.Confirm()
	require.NoError(t, err)
	assert.Equal(t, report.State{Phase: report.PhaseDone, Reason: report.ReasonSpam}, state)
}

/*
TestFlow_BackKeepsReason verifies going back preserves the selection.
*/
func TestFlow_BackKeepsReason(t *testing.T) {
	state, err := report.State{Phase: report.PhaseConfirming, Reason: report.ReasonAbuse}.Back()

	require.NoError(t, err)
	assert.Equal(t, report.PhaseSelecting, state.Phase)
	assert.Equal(t, report.ReasonAbuse, state.Reason)
}

/*
TestFlow_Errors verifies rejected transitions leave the state untouched.
*/
func TestFlow_Errors(t *testing.T) {
	selecting := report.Start()
	confirming := report.State{Phase: report.PhaseConfirming, Reason: report.ReasonOther}
	done := report.State{Phase: report.PhaseDone, Reason: report.ReasonOther}

	tests := []struct {
		name  string
		state report.State
		step  func(report.State) (report.State, error)
		want  error
	}{
		{"next_without_reason", selecting, report.State.Next, report.ErrReasonRequired},
		{"confirm_while_selecting", selecting, report.State.Confirm, report.ErrInvalidTransition},
		{"back_while_selecting", selecting, report.State.Back, report.ErrInvalidTransition},
		{"next_while_confirming", confirming, report.State.Next, report.ErrInvalidTransition},
		{"confirm_twice", done, report.State.Confirm, report.ErrInvalidTransition},
		{"back_when_done", done, report.State.Back, report.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.step(tt.state)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.state, got)
		})
	}
}

/*
TestSelect verifies reason validation and phase checks.
*/
func TestSelect(t *testing.T) {
	_, err := report.Start().Select("boring")
	assert.ErrorIs(t, err, report.ErrUnknownReason)

	_, err = report.State{Phase: report.PhaseConfirming, Reason: report.ReasonSpam}.Select(report.ReasonAbuse)
	assert.ErrorIs(t, err, report.ErrInvalidTransition)
}

/*
TestApply verifies the form actions map onto transitions.
*/
func TestApply(t *testing.T) {
	state, err := report.Start().Apply("next", report.ReasonIllegal)
	require.NoError(t, err)
	assert.Equal(t, report.State{Phase: report.PhaseConfirming, Reason: report.ReasonIllegal}, state)

	state, err = state.Apply("back", "")
	require.NoError(t, err)
	assert.Equal(t, report.PhaseSelecting, state.Phase)

	_, err = state.Apply("explode", "")
	assert.ErrorIs(t, err, report.ErrInvalidTransition)
}

/*
TestRestore verifies untrusted form values are sanitized.
*/
func TestRestore(t *testing.T) {
	tests := []struct {
		name   string
		phase  string
		reason string
		want   report.State
	}{
		{"empty", "", "", report.Start()},
		{"selecting_with_reason", "selecting", "spam", report.State{Phase: report.PhaseSelecting, Reason: report.ReasonSpam}},
		{"selecting_bad_reason", "selecting", "nope", report.Start()},
		{"confirming", "confirming", "obscene", report.State{Phase: report.PhaseConfirming, Reason: report.ReasonObscene}},
		{"confirming_without_reason", "confirming", "", report.Start()},
		{"unknown_phase", "hacked", "spam", report.Start()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.Restore(tt.phase, tt.reason))
		})
	}
}

/*
TestReasons verifies every reason is valid and labelled.
*/
func TestReasons(t *testing.T) {
	require.Len(t, report.Reasons, 5)
	for _, reason := range report.Reasons {
		assert.True(t, reason.Valid())
		assert.NotEmpty(t, reason.Label())
	}
	assert.False(t, report.Reason("boring").Valid())
}
