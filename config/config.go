// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"time"
)

// NetworkType selects a preset Parameters set.
type NetworkType string

const (
	MainnetNetwork NetworkType = "mainnet"
	TestnetNetwork NetworkType = "testnet"
	LocalNetwork   NetworkType = "local"
)

// Config is the serializable, validated form of Parameters. It is what a
// node loads from disk or flags; Parameters is what the engine runs with.
type Config struct {
	K                     int           `json:"k"`
	AlphaPreference       int           `json:"alphaPreference"`
	AlphaConfidence       int           `json:"alphaConfidence"`
	Beta                  int           `json:"beta"`
	MinRoundInterval      time.Duration `json:"minRoundInterval"`
	MaxItemProcessingTime time.Duration `json:"maxItemProcessingTime"`
	EnableFPC             bool          `json:"enableFPC"`
	ConcurrentPolls       int           `json:"concurrentPolls"`
	OptimalProcessing     int           `json:"optimalProcessing"`
	MaxOutstandingItems   int           `json:"maxOutstandingItems"`
}

// Builder provides a fluent interface for constructing a validated Config.
type Builder struct {
	config Config
	err    error
}

// NewBuilder starts from the Local preset; callers override what they need.
func NewBuilder() *Builder {
	return &Builder{config: fromParameters(Local())}
}

// FromPreset replaces the builder's config with a named network preset.
func (b *Builder) FromPreset(preset NetworkType) *Builder {
	if b.err != nil {
		return b
	}
	switch preset {
	case MainnetNetwork:
		b.config = fromParameters(Mainnet())
	case TestnetNetwork:
		b.config = fromParameters(Testnet())
	case LocalNetwork:
		b.config = fromParameters(Local())
	default:
		b.err = fmt.Errorf("unknown network preset %q", preset)
	}
	return b
}

// WithK overrides the sample size.
func (b *Builder) WithK(k int) *Builder {
	if b.err == nil {
		b.config.K = k
	}
	return b
}

// WithAlpha overrides the preference and confidence thresholds.
func (b *Builder) WithAlpha(preference, confidence int) *Builder {
	if b.err == nil {
		b.config.AlphaPreference = preference
		b.config.AlphaConfidence = confidence
	}
	return b
}

// WithBeta overrides the finalization streak length.
func (b *Builder) WithBeta(beta int) *Builder {
	if b.err == nil {
		b.config.Beta = beta
	}
	return b
}

// WithMinRoundInterval overrides the scheduler's minimum tick period.
func (b *Builder) WithMinRoundInterval(d time.Duration) *Builder {
	if b.err == nil {
		b.config.MinRoundInterval = d
	}
	return b
}

// Build validates the accumulated config and returns it.
func (b *Builder) Build() (Config, error) {
	if b.err != nil {
		return Config{}, b.err
	}
	if err := b.config.Validate(); err != nil {
		return Config{}, err
	}
	return b.config, nil
}

// Validate checks the config's own invariants: K >= 1, 1 <= alphaPreference
// <= alphaConfidence <= K, beta >= 1, and MinRoundInterval >= 1ms.
func (c Config) Validate() error {
	if c.K < 1 {
		return ErrInvalidK
	}
	if c.AlphaPreference < 1 || c.AlphaPreference > c.K {
		return fmt.Errorf("%w: alphaPreference %d out of range [1,%d]", ErrInvalidAlpha, c.AlphaPreference, c.K)
	}
	if c.AlphaConfidence < c.AlphaPreference || c.AlphaConfidence > c.K {
		return fmt.Errorf("%w: alphaConfidence %d out of range [%d,%d]", ErrInvalidAlpha, c.AlphaConfidence, c.AlphaPreference, c.K)
	}
	if c.Beta < 1 {
		return ErrInvalidBeta
	}
	if c.MinRoundInterval < time.Millisecond {
		return ErrRoundTimeoutTooLow
	}
	return nil
}

func fromParameters(p Parameters) Config {
	return Config{
		K:                     p.K,
		AlphaPreference:       p.AlphaPreference,
		AlphaConfidence:       p.AlphaConfidence,
		Beta:                  p.Beta,
		MinRoundInterval:      p.MinRoundInterval,
		MaxItemProcessingTime: p.MaxItemProcessingTime,
		EnableFPC:             p.EnableFPC,
		ConcurrentPolls:       p.ConcurrentPolls,
		OptimalProcessing:     p.OptimalProcessing,
		MaxOutstandingItems:   p.MaxOutstandingItems,
	}
}
