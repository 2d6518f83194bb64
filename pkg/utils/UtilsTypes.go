package utils

import "time"


type ExpBackoffOpts struct {
	MaxRetries *int
	TimeoutInMilliseconds int
}

type ExpBackoffStrat [T any] struct {
	maxRetries *int
	initialTimeout time.Duration
}

const MaxBackoffElapsed = 30 * time.Second
