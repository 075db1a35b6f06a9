package medium

import "os"
import "fmt"
import "log"
import "github.com/go-redis/redis"

// Redis is a Medium backed by a redis server.
type Redis struct {
	client *redis.Client
	prefix string
}

func (r *Redis) keyFor(key string) string {
	if len(r.prefix) == 0 {
		return key
	}

	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Get executes a GET for the prefixed key, mapping redis.Nil to ErrNotFound.
func (r *Redis) Get(key string) (string, error) {
	data, e := r.client.Get(r.keyFor(key)).Result()

	if e == redis.Nil {
		return "", ErrNotFound
	}

	if e != nil {
		return "", fmt.Errorf("medium: redis get '%s': %w", r.keyFor(key), e)
	}

	return data, nil
}

// Set stores the value without an expiration.
func (r *Redis) Set(key string, value string) error {
	if e := r.client.Set(r.keyFor(key), value, 0).Err(); e != nil {
		return fmt.Errorf("medium: redis set '%s': %w", r.keyFor(key), e)
	}

	return nil
}

// Delete executes a DEL for the prefixed key.
func (r *Redis) Delete(key string) error {
	if e := r.client.Del(r.keyFor(key)).Err(); e != nil {
		return fmt.Errorf("medium: redis del '%s': %w", r.keyFor(key), e)
	}

	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

// NewRedis connects to redis and verifies the connection with a PING. A nil
// logger writes to stderr.
func NewRedis(options redis.Options, prefix string, logger *log.Logger) (*Redis, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	client := redis.NewClient(&options)

	result := client.Ping()

	if e := result.Err(); e != nil {
		client.Close()
		return nil, fmt.Errorf("medium: redis ping %s: %w", options.Addr, e)
	}

	logger.Printf("successfully pinged redis server '%s'", result.String())

	return &Redis{client: client, prefix: prefix}, nil
}
