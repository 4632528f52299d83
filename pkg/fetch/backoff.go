package fetch

import (
	"errors"
	"io"
	"math/rand"
	"net"
	"syscall"
	"time"
)

// Policy bounds the retry behaviour shared by page and image downloads.
type Policy struct {
	// Retries is the number of additional attempts after the first one.
	Retries   int
	BaseDelay time.Duration
	MaxJitter time.Duration
}

// DefaultPolicy is used when a zero Policy is supplied.
var DefaultPolicy = Policy{
	Retries:   3,
	BaseDelay: 500 * time.Millisecond,
	MaxJitter: 250 * time.Millisecond,
}

// OrDefault substitutes DefaultPolicy for a zero policy.
func (p Policy) OrDefault() Policy {
	if p.Retries == 0 && p.BaseDelay == 0 {
		return DefaultPolicy
	}
	return p
}

// Delay returns how long to sleep before retrying the given zero-based
// attempt: the base delay doubling each attempt plus bounded random jitter.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.OrDefault()
	d := p.BaseDelay << uint(attempt)
	if p.MaxJitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.MaxJitter)))
	}
	return d
}

// MaxDelay is the upper bound Delay can return for this policy.
func (p Policy) MaxDelay() time.Duration {
	p = p.OrDefault()
	return p.BaseDelay<<uint(p.Retries) + p.MaxJitter
}

// IsTransient reports whether err is a network-level failure worth retrying:
// timeouts, resets, refused connections and truncated responses. A definitive
// HTTP error status is not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}
