package env

import "os"
import "fmt"
import "strconv"
import "strings"
import "github.com/joho/godotenv"
import "github.com/go-redis/redis"

// Medium names accepted in KRUMSESSION_MEDIUM.
const (
	MediumFile   = "file"
	MediumRedis  = "redis"
	MediumMemory = "memory"
	MediumNone   = "none"
)

// Config contains the configuration necessary for opening a session store.
type Config struct {
	Medium string
	Key    string
	Dir    string
	Redis  redis.Options
	Prefix string
}

// Load reads the given .env files, ignoring ones that do not exist, and then
// builds a Config from the environment. Variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if e := godotenv.Load(file); e != nil && !os.IsNotExist(e) {
			return Config{}, fmt.Errorf("env: load %s: %w", file, e)
		}
	}

	config := Config{
		Medium: strings.ToLower(lookup("KRUMSESSION_MEDIUM", MediumFile)),
		Key:    lookup("KRUMSESSION_KEY", "auth"),
		Dir:    os.Getenv("KRUMSESSION_DIR"),
		Prefix: lookup("KRUMSESSION_REDIS_PREFIX", "krumsession"),
		Redis: redis.Options{
			Addr:     lookup("KRUMSESSION_REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("KRUMSESSION_REDIS_PASSWORD"),
		},
	}

	switch config.Medium {
	case MediumFile, MediumRedis, MediumMemory, MediumNone:
	default:
		return Config{}, fmt.Errorf("env: unknown medium '%s'", config.Medium)
	}

	db, e := strconv.Atoi(lookup("KRUMSESSION_REDIS_DB", "0"))

	if e != nil {
		return Config{}, fmt.Errorf("env: invalid KRUMSESSION_REDIS_DB: %w", e)
	}

	config.Redis.DB = db

	return config, nil
}

func lookup(name string, fallback string) string {
	if value := os.Getenv(name); len(value) > 0 {
		return value
	}

	return fallback
}
