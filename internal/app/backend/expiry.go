package backend

import (
	"sync"
	"time"
)

// expiryCooldown is how long repeated authentication failures are
// coalesced into one round of expiry side effects. Pages firing
// several requests at once all fail together when a token dies.
const expiryCooldown = 2 * time.Second

// expiryGuard makes the expiry side effects run exactly once per
// burst of authentication failures.
type expiryGuard struct {
	mu       sync.Mutex
	handling bool
	timer    *time.Timer
	cooldown time.Duration
}

// begin reports whether the caller owns this round of side effects.
// While a round is in progress further triggers only extend the
// cooldown window.
func (g *expiryGuard) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}

	first := !g.handling
	g.handling = true
	g.timer = time.AfterFunc(g.cooldown, g.reset)
	return first
}

func (g *expiryGuard) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handling = false
	g.timer = nil
}
