package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/barbersim/shop"
)

// SaveState writes the current engine state to a JSON file at path. The
// driver should be paused or stopped while saving.
func (s *Simulation) SaveState(path string) error {
	state := s.engine.State()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	return nil
}

// LoadState replaces the engine state with one previously written by
// SaveState. The engine keeps running from the restored point.
func (s *Simulation) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	var state shop.State
	err = json.Unmarshal(data, &state)
	if err != nil {
		return fmt.Errorf("parse state: %w", err)
	}

	return s.engine.RestoreState(state)
}
