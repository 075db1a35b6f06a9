package store

import "log"
import "fmt"
import "github.com/krumpled/krumsession/store/env"
import "github.com/krumpled/krumsession/store/auth"
import "github.com/krumpled/krumsession/store/medium"

// Session is a SessionStore together with the medium it was opened on.
type Session struct {
	*auth.SessionStore
	closer func() error
}

// Close releases the medium's resources.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer()
}

func openMedium(config env.Config, logger *log.Logger) (medium.Medium, func() error, error) {
	switch config.Medium {
	case env.MediumNone:
		return medium.Unavailable, nil, nil
	case env.MediumMemory:
		return medium.NewMemory(), nil, nil
	case env.MediumRedis:
		client, e := medium.NewRedis(config.Redis, config.Prefix, logger)

		if e != nil {
			return nil, nil, e
		}

		return client, client.Close, nil
	case env.MediumFile:
		dir := config.Dir

		if len(dir) == 0 {
			fallback, e := medium.DefaultDir()

			if e != nil {
				return nil, nil, e
			}

			dir = fallback
		}

		return medium.NewFile(dir), nil, nil
	}

	return nil, nil, fmt.Errorf("unknown medium '%s'", config.Medium)
}

// New opens the medium named by the config and loads the persisted session from it.
func New(config env.Config, logger *log.Logger) (*Session, error) {
	durable, closer, e := openMedium(config, logger)

	if e != nil {
		return nil, e
	}

	options := []auth.Option{auth.WithMedium(durable), auth.WithKey(config.Key)}

	if logger != nil {
		options = append(options, auth.WithLogger(logger))
	}

	return &Session{SessionStore: auth.OpenSessionStore(options...), closer: closer}, nil
}
