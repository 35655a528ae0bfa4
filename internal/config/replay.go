package config

import (
	"fmt"

	"github.com/lgbarn/board-rules-go/internal/errors"
)

// ReplayConfig holds settings for replaying scripted games.
type ReplayConfig struct {
	// KeepGoing continues a game past an unexpected outcome; the first
	// one is still reported as the game's error.
	KeepGoing bool

	// PlyLimit stops each game after this many plies (0 = no limit)
	PlyLimit int

	// Strict treats a parse error as fatal for the whole run
	Strict bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.PlyLimit < 0 {
		return fmt.Errorf("ply limit %d: %w", r.PlyLimit, errors.ErrInvalidConfig)
	}
	return nil
}
