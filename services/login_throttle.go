package services

import (
	"math"
	"sync"
	"time"
)

const ThrottleCooldownCapSeconds = 30

// Failures are forgotten once an identifier has been out of cooldown this
// long, so the table only holds identifiers that failed recently.
const (
	throttleForgetAfter = 15 * time.Minute
	throttlePruneEvery  = time.Minute
)

type throttleEntry struct {
	failCount     int
	cooldownUntil time.Time
}

// LoginThrottle slows down repeated failed logins per identifier. A nil
// *LoginThrottle never throttles.
type LoginThrottle struct {
	mu        sync.Mutex
	now       func() time.Time
	entries   map[string]throttleEntry
	lastPrune time.Time
}

// NewLoginThrottle uses time.Now when now is nil.
func NewLoginThrottle(now func() time.Time) *LoginThrottle {
	if now == nil {
		now = time.Now
	}
	return &LoginThrottle{now: now, entries: make(map[string]throttleEntry)}
}

// WaitSeconds returns how many seconds identifier must wait before trying again (0 if no cooldown).
func (t *LoginThrottle) WaitSeconds(identifier string) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[identifier]
	if !ok {
		return 0
	}
	now := t.now()
	if now.Before(e.cooldownUntil) {
		return int(math.Ceil(e.cooldownUntil.Sub(now).Seconds()))
	}
	if now.Sub(e.cooldownUntil) > throttleForgetAfter {
		delete(t.entries, identifier)
	}
	return 0
}

// RecordFailed increments the fail count and sets cooldown to min(30, 2^failCount) seconds.
func (t *LoginThrottle) RecordFailed(identifier string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if now.Sub(t.lastPrune) >= throttlePruneEvery {
		t.prune(now)
	}
	e := t.entries[identifier]
	e.failCount++
	e.cooldownUntil = now.Add(time.Duration(CooldownSecondsForFailCount(e.failCount)) * time.Second)
	t.entries[identifier] = e
}

// prune drops identifiers whose cooldown ended long ago. Caller holds mu.
func (t *LoginThrottle) prune(now time.Time) {
	for id, e := range t.entries {
		if now.Sub(e.cooldownUntil) > throttleForgetAfter {
			delete(t.entries, id)
		}
	}
	t.lastPrune = now
}

// RecordSuccess clears the identifier's failures.
func (t *LoginThrottle) RecordSuccess(identifier string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, identifier)
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	s := math.Pow(2, float64(failCount))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return int(s)
}
