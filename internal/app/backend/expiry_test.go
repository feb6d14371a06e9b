package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuardFirstTriggerOwnsSideEffects(t *testing.T) {
	g := expiryGuard{cooldown: time.Hour}
	assert.True(t, g.begin())
	assert.False(t, g.begin())
	assert.False(t, g.begin())
}

func TestGuardResetsAfterCooldown(t *testing.T) {
	g := expiryGuard{cooldown: 20 * time.Millisecond}
	assert.True(t, g.begin())

	time.Sleep(60 * time.Millisecond)
	assert.True(t, g.begin(), "a failure after the cooldown starts a new round")
}

func TestGuardRetriggerExtendsCooldown(t *testing.T) {
	g := expiryGuard{cooldown: 50 * time.Millisecond}
	assert.True(t, g.begin())

	// Keep triggering inside the window; the round must not reset
	// while failures are still arriving.
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		assert.False(t, g.begin())
	}
}
