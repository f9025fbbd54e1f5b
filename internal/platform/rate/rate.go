// Package rate paces outbound calls that share a remote quota, such as
// webhook posts issued concurrently by several domain workers.
package rate

import (
	"context"
	"time"

	xrate "golang.org/x/time/rate"
)

// Limiter is a token bucket shared by concurrent callers.
type Limiter struct {
	lim *xrate.Limiter
}

// New creates a limiter allowing rps operations per second with the given burst.
// Non-positive values fall back to 1.
//
// Example:
//   limiter := rate.New(2.5, 5) // Discord webhooks: 5 requests per 2 seconds
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{lim: xrate.NewLimiter(xrate.Limit(rps), burst)}
}

// Every builds a limiter releasing burst tokens per interval.
func Every(interval time.Duration, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	if interval <= 0 {
		return New(float64(burst), burst)
	}
	return &Limiter{lim: xrate.NewLimiter(xrate.Every(interval/time.Duration(burst)), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Allow consumes a token if one is available right now.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// SetRate changes the refill rate.
func (l *Limiter) SetRate(rps float64) {
	if rps <= 0 {
		rps = 1
	}
	l.lim.SetLimit(xrate.Limit(rps))
}

// SetBurst changes the bucket size.
func (l *Limiter) SetBurst(burst int) {
	if burst <= 0 {
		burst = 1
	}
	l.lim.SetBurst(burst)
}

// Rate returns tokens per second.
func (l *Limiter) Rate() float64 {
	return float64(l.lim.Limit())
}

// Burst returns the bucket size.
func (l *Limiter) Burst() int {
	return l.lim.Burst()
}
