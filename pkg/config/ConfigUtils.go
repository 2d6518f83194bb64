package config

import "strconv"
import "time"


type environment struct {
	getenv func(string) string
}

func (env environment) str(key string, fallback string) string {
	value := env.getenv(key)
	if value == "" { return fallback }

	return value
}

func (env environment) integer(key string, fallback int) int {
	value, convErr := strconv.Atoi(env.getenv(key))
	if convErr != nil { return fallback }

	return value
}

func (env environment) duration(key string, fallback time.Duration) time.Duration {
	value, parseErr := time.ParseDuration(env.getenv(key))
	if parseErr != nil { return fallback }

	return value
}
