package auth

import "log"
import "github.com/krumpled/krumsession/store/medium"

// DefaultKey is the key the snapshot is stored under unless WithKey is given.
const DefaultKey = "auth"

// Option configures a SessionStore.
type Option func(*SessionStore)

// WithMedium sets the durable medium. A nil medium keeps the store in memory.
func WithMedium(m medium.Medium) Option {
	return func(s *SessionStore) {
		s.medium = m
	}
}

// WithKey sets the key the snapshot is stored under.
func WithKey(key string) Option {
	return func(s *SessionStore) {
		if len(key) > 0 {
			s.key = key
		}
	}
}

// WithLogger replaces the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *SessionStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}
