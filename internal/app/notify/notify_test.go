package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndCurrent(t *testing.T) {
	n := New()

	_, visible := n.Current()
	assert.False(t, visible)

	id := n.Error("Session expired. Please log in again.")
	current, visible := n.Current()
	require.True(t, visible)
	assert.Equal(t, id, current.ID)
	assert.Equal(t, KindError, current.Kind)
	assert.Equal(t, "Session expired. Please log in again.", current.Message)
}

func TestShowReplacesOutstanding(t *testing.T) {
	n := New()

	first := n.Info("saving")
	second := n.Success("saved")
	assert.NotEqual(t, first, second)

	current, visible := n.Current()
	require.True(t, visible)
	assert.Equal(t, second, current.ID)
	assert.Equal(t, KindSuccess, current.Kind)
}

func TestDismiss(t *testing.T) {
	n := New()
	n.Warning("low stock")
	n.Dismiss()

	_, visible := n.Current()
	assert.False(t, visible)
}

func TestStaleTimerDoesNotDismissReplacement(t *testing.T) {
	n := New()
	first := n.Info("first")

	// Simulate the first notification's timer firing after it was
	// already replaced.
	second := n.Info("second")
	n.dismiss(first)

	current, visible := n.Current()
	require.True(t, visible)
	assert.Equal(t, second, current.ID)
}
