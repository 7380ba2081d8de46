package abstraction

import (
	"errors"
	"runtime"
	"time"
)

// Config controls how tables are discretised and scheduled.
type Config struct {
	// Buckets is the number of strength buckets in flop, turn and OCHS histograms.
	Buckets int

	// Workers is the number of goroutines sharing a build.
	Workers int

	// ChunkSize is how many outer indices a worker claims at a time.
	ChunkSize int

	// ProgressEvery is the interval between progress log lines. Zero disables them.
	ProgressEvery time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Buckets:       DefaultBuckets,
		Workers:       runtime.GOMAXPROCS(0),
		ChunkSize:     64,
		ProgressEvery: 30 * time.Second,
	}
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	if c.Buckets <= 0 {
		return errors.New("bucket count must be > 0")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be > 0")
	}
	if c.ChunkSize <= 0 {
		return errors.New("chunk size must be > 0")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}
