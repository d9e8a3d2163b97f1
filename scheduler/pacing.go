package scheduler

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RenderPacer keeps one rate limiter per window and reports, through Allow,
// whether that window's RENDER phase may be entered right now. It only
// reports: Loop.RunOnce does not consult it and it never queues, delays or
// drops a render itself. Package app exposes it as App.RenderAdmitted.
type RenderPacer struct {
	mu sync.Mutex
	limiters map[uint64]*rate.Limiter
	every time.Duration
	burst int
}

// NewRenderPacer creates a pacer allowing burst renders followed by steady
// state of one render per `every` duration, per window.
func NewRenderPacer(every time.Duration, burst int) *RenderPacer {
	return &RenderPacer{
		limiters: make(map[uint64]*rate.Limiter),
		every: every,
		burst: burst,
	}
}

func (p *RenderPacer) limiterFor(win uint64) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[win]
	if !ok {
		l = rate.NewLimiter(rate.Every(p.every), p.burst)
		p.limiters[win] = l
	}
	return l
}

// Allow reports whether win's RENDER phase may be entered right now,
// consuming one token of win's limiter when it does.
func (p *RenderPacer) Allow(win uint64) bool {
	return p.limiterFor(win).Allow()
}

// Forget releases a closed window's limiter.
func (p *RenderPacer) Forget(win uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.limiters, win)
}
