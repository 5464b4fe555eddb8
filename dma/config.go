package dma

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type ChunkPoolConfig struct {
	// Number of free chunks for each chunk size the pool can hold before starting to release memory.
	// A value <= 0 never releases.
	FreeThresholds [len(chunkSizes)]int `yaml:"free_thresholds"`
}

func DefaultChunkPoolConfig() ChunkPoolConfig {
	return ChunkPoolConfig{
		FreeThresholds: [len(chunkSizes)]int{
			1024, // 64MB
			128,  // 64MB
			64,   // 128MB
		},
	}
}

type Config struct {
	Channels   int `yaml:"channels"`    // Number of transfers that run at the same time.
	QueueDepth int `yaml:"queue_depth"` // Number of submitted transfers waiting for a channel.

	// BurstSize is the number of bytes moved per step. Cancellation is checked
	// between bursts, so it also bounds how long a cancelled transfer keeps running.
	BurstSize int `yaml:"burst_size"`

	ChunkPool ChunkPoolConfig `yaml:"chunk_pool"`
}

func DefaultConfig() Config {
	return Config{
		Channels:   2,
		QueueDepth: 16,
		BurstSize:  4 * KiB,
		ChunkPool:  DefaultChunkPoolConfig(),
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Channels <= 0 {
		errs = append(errs, fmt.Errorf("%w: channels must be greater than 0", ErrInvalidConfig))
	}
	if c.QueueDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: queue depth cannot be negative", ErrInvalidConfig))
	}
	if c.BurstSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: burst size must be greater than 0", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config from r on top of [DefaultConfig] and validates it.
// Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
