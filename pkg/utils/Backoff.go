package utils

import "time"

import "github.com/cenkalti/backoff"


//=========================================== Exponential Backoff


/*
	Exponential Backoff Strategy:
		wraps an operation returning (T, error) and retries it with exponentially growing waits
			1.) the first wait is TimeoutInMilliseconds, each following wait doubles
			2.) after MaxRetries failed retries the last error is returned
			3.) a nil MaxRetries retries until the backoff's own elapsed time limit is hit
*/

func NewExponentialBackoffStrat [T any](opts ExpBackoffOpts) *ExpBackoffStrat[T] {
	return &ExpBackoffStrat[T]{
		maxRetries: opts.MaxRetries,
		initialTimeout: time.Duration(opts.TimeoutInMilliseconds) * time.Millisecond,
	}
}

func (strat *ExpBackoffStrat[T]) PerformBackoff(operation func() (T, error)) (T, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = strat.initialTimeout
	expBackoff.Multiplier = 2
	expBackoff.RandomizationFactor = 0.1
	expBackoff.MaxElapsedTime = MaxBackoffElapsed
	expBackoff.Reset()

	var policy backoff.BackOff = expBackoff
	if strat.maxRetries != nil { policy = backoff.WithMaxRetries(expBackoff, uint64(*strat.maxRetries)) }

	var result T
	attempt := func() error {
		res, err := operation()
		if err != nil { return err }

		result = res
		return nil
	}

	retryErr := backoff.Retry(attempt, policy)
	if retryErr != nil { return GetZero[T](), retryErr }

	return result, nil
}
