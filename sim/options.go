package sim

import (
	"math/rand/v2"
	"time"
)

const DefaultShots = 1024

// RunConfig is the per-run configuration handed to a backend.
type RunConfig struct {
	Shots int
	Seed  uint64 // 0 picks a seed from the clock
}

type RunOption func(*RunConfig)

// WithShots sets the number of shots for sampling backends.
func WithShots(n int) RunOption {
	return func(c *RunConfig) {
		c.Shots = n
	}
}

// WithSeed fixes the random seed so runs are reproducible.
func WithSeed(seed uint64) RunOption {
	return func(c *RunConfig) {
		c.Seed = seed
	}
}

func newRunConfig(opts []RunOption) RunConfig {
	cfg := RunConfig{Shots: DefaultShots}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg
}

func (c RunConfig) rng() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}
