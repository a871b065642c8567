package purchase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// SubmitterConfig tunes the submit-and-verify behavior.
type SubmitterConfig struct {
	// SettleInterval is the fixed wait before the first verification fetch
	// after an unconfirmed write, allowing the write to become visible to
	// reads. Default: 1 second.
	SettleInterval time.Duration
	// VerifyTimeout bounds the whole verification phase, including retries
	// of the re-fetch itself. Default: 5 seconds.
	VerifyTimeout time.Duration
	// MaxVerifyAttempts caps the number of verification fetches. Default: 3.
	MaxVerifyAttempts int
}

// DefaultSubmitterConfig returns the default submitter tuning.
func DefaultSubmitterConfig() SubmitterConfig {
	return SubmitterConfig{
		SettleInterval:    time.Second,
		VerifyTimeout:     5 * time.Second,
		MaxVerifyAttempts: 3,
	}
}

// Submitter submits purchase requests with duplicate protection and
// reconciliation against an unreliable write transport.
//
// A write can end three ways: confirmed by the server response, verified
// after an unreadable response by re-fetching the user's requests, or
// unconfirmed when even the re-fetch shows no matching record. Only the
// last case is surfaced as ErrUnconfirmed; the first two return the
// created request.
type Submitter struct {
	client *Client
	userID uint
	config SubmitterConfig

	mu       sync.Mutex
	inflight map[Target]struct{}
}

// NewSubmitter creates a submitter acting as the given user.
func NewSubmitter(client *Client, userID uint, config SubmitterConfig) *Submitter {
	if config.SettleInterval <= 0 {
		config.SettleInterval = time.Second
	}
	if config.VerifyTimeout <= 0 {
		config.VerifyTimeout = 5 * time.Second
	}
	if config.MaxVerifyAttempts <= 0 {
		config.MaxVerifyAttempts = 3
	}
	return &Submitter{
		client:   client,
		userID:   userID,
		config:   config,
		inflight: make(map[Target]struct{}),
	}
}

// Submit creates a purchase request for the target.
//
// Returns ErrAlreadyActive when a pending or accepted request already
// covers the target, either from the pre-check or because another Submit
// for the same target is still in flight. Returns ErrUnconfirmed when the
// write was sent but could not be verified; the server remains the source
// of truth and the caller may retry.
func (s *Submitter) Submit(ctx context.Context, target Target) (*Request, error) {
	if !s.acquire(target) {
		return nil, fmt.Errorf("%w: submission in flight for this target", ErrAlreadyActive)
	}
	defer s.release(target)

	decision, err := s.client.CheckAccess(ctx, s.userID, target)
	if err != nil {
		return nil, fmt.Errorf("pre-check: %w", err)
	}
	if decision.Status == StatusPending || decision.Status == StatusAccepted {
		return nil, fmt.Errorf("%w: status is %s", ErrAlreadyActive, decision.Status)
	}

	request, err := s.client.CreateRequest(ctx, target)
	if err == nil {
		return request, nil
	}
	if errors.Is(err, ErrConflict) {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyActive, err)
	}
	if !errors.Is(err, ErrUnconfirmed) {
		return nil, err
	}

	// The write was sent but its outcome is unknown. Wait for it to become
	// visible, then decide from a read instead of guessing.
	return s.verify(ctx, target)
}

// verify re-fetches the user's requests after the settling wait and looks
// for a pending request matching the target. Fetch failures are retried
// with exponential backoff; if no matching record can be found the
// submission is reported as unconfirmed, never as a hard failure.
func (s *Submitter) verify(ctx context.Context, target Target) (*Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.SettleInterval+s.config.VerifyTimeout)
	defer cancel()

	if err := sleepCtx(ctx, s.config.SettleInterval); err != nil {
		return nil, fmt.Errorf("%w: interrupted before verification", ErrUnconfirmed)
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = s.config.SettleInterval / 2
	expBackoff.Reset()

	var lastErr error
	for attempt := 0; attempt < s.config.MaxVerifyAttempts; attempt++ {
		if attempt > 0 {
			delay := expBackoff.NextBackOff()
			if delay == backoff.Stop {
				break
			}
			if err := sleepCtx(ctx, delay); err != nil {
				break
			}
		}

		requests, err := s.client.ListRequests(ctx, target.Kind)
		if err != nil {
			lastErr = err
			continue
		}

		for i := range requests {
			r := &requests[i]
			if r.TargetID == target.ID && r.Status == StatusPending {
				return r, nil
			}
		}

		// A successful fetch with no matching record is conclusive for
		// this attempt set; the write may still land later, so the caller
		// is told to check back rather than given a failure.
		return nil, fmt.Errorf("%w: no matching request found after settling wait", ErrUnconfirmed)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: verification fetch failed: %v", ErrUnconfirmed, lastErr)
	}
	return nil, fmt.Errorf("%w: verification exhausted", ErrUnconfirmed)
}

func (s *Submitter) acquire(target Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.inflight[target]; exists {
		return false
	}
	s.inflight[target] = struct{}{}
	return true
}

func (s *Submitter) release(target Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, target)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
