package gptclient

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BaseDelay < 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	return c
}

type retryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with the bounded retry policy:
// rate limits back off linearly by attempt, connection failures and
// retryable provider errors wait a fixed delay, anything else stops the loop.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{inner: p, config: cfg.withDefaults()}
}

func (r *retryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	maxAttempts := r.config.MaxAttempts
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := r.inner.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err
		logger := log.
			WithField("model", r.inner.ModelID()).
			WithField("attempt", attempt).
			WithField("max_attempts", maxAttempts)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		var wait time.Duration
		var rateLimit *ErrRateLimit
		var connErr *ErrConnection
		var providerErr *ErrProvider
		switch {
		case errors.As(err, &rateLimit):
			wait = r.config.BaseDelay * time.Duration(attempt)
			logger.WithError(err).Warn("provider rate limit, backing off")
		case errors.As(err, &connErr):
			wait = r.config.BaseDelay
			logger.WithError(err).Warn("provider connection failed, retrying")
		case errors.As(err, &providerErr):
			if !providerErr.Retryable || attempt == maxAttempts {
				logger.WithError(err).Error("provider returned an error")
				return nil, &ErrAttempt{Attempt: attempt, MaxAttempts: maxAttempts, Err: err}
			}
			wait = r.config.BaseDelay
			logger.WithError(err).Warn("provider returned a retryable error")
		default:
			logger.WithError(err).Error("unexpected error calling provider")
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, &ErrExhausted{
		Attempts: maxAttempts,
		Elapsed:  time.Since(started),
		Err:      lastErr,
	}
}
