// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validatorstest provides a scriptable validators.State for tests.
package validatorstest

import (
	"context"

	"github.com/luxfi/coreavalanche/validators"
	"github.com/luxfi/ids"
)

// State is an alias for TestState for backward compatibility.
type State = TestState

// TestState is a test implementation of validators.State whose behavior is
// overridden per call via the *F function fields; unset fields return
// empty results rather than failing the test.
type TestState struct {
	GetValidatorSetF      func(ctx context.Context, height uint64, netID ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error)
	GetCurrentValidatorsF func(ctx context.Context, netID ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error)
}

var _ validators.State = (*TestState)(nil)

// NewTestState creates a new test state with no validators registered.
func NewTestState() *TestState {
	return &TestState{}
}

// GetValidatorSet returns a validator set with detailed output.
func (s *TestState) GetValidatorSet(ctx context.Context, height uint64, netID ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error) {
	if s.GetValidatorSetF != nil {
		return s.GetValidatorSetF(ctx, height, netID)
	}
	return make(map[ids.NodeID]*validators.GetValidatorOutput), nil
}

// GetCurrentValidators returns the validator set at the current height.
func (s *TestState) GetCurrentValidators(ctx context.Context, netID ids.ID) (map[ids.NodeID]*validators.GetValidatorOutput, error) {
	if s.GetCurrentValidatorsF != nil {
		return s.GetCurrentValidatorsF(ctx, netID)
	}
	return make(map[ids.NodeID]*validators.GetValidatorOutput), nil
}
