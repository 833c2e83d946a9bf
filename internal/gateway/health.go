package gateway

import "time"

// providerHealth is the rolling failure state for one provider. After
// failureThreshold consecutive failures the provider is skipped until
// coolingUntil, then given another chance.
type providerHealth struct {
	consecutive  int
	coolingUntil time.Time
}

func (g *Gateway) available(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.health[name]
	if !ok {
		return true
	}
	if h.coolingUntil.IsZero() {
		return true
	}
	if g.now().Before(h.coolingUntil) {
		return false
	}
	// Cooldown elapsed: clear the trip but keep the provider on probation by
	// leaving the counter one below the threshold.
	h.coolingUntil = time.Time{}
	h.consecutive = g.failureThreshold - 1
	return true
}

func (g *Gateway) recordFailure(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.health[name]
	if !ok {
		h = &providerHealth{}
		g.health[name] = h
	}
	h.consecutive++
	if h.consecutive >= g.failureThreshold && g.cooldown > 0 {
		h.coolingUntil = g.now().Add(g.cooldown)
	}
}

func (g *Gateway) recordSuccess(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if h, ok := g.health[name]; ok {
		h.consecutive = 0
		h.coolingUntil = time.Time{}
	}
}
