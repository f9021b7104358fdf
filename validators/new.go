// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"fmt"

	"github.com/luxfi/coreavalanche/set"
	"github.com/luxfi/ids"
)

// NewManager returns an in-memory Manager suitable for a single node
// instance; networks and their light are populated via AddValidator.
func NewManager() Manager {
	return &manager{
		validators:   make(map[ids.ID]map[ids.NodeID]*GetValidatorOutput),
		setCallbacks: make(map[ids.ID][]SetCallbackListener),
	}
}

type manager struct {
	validators   map[ids.ID]map[ids.NodeID]*GetValidatorOutput
	callbacks    []ManagerCallbackListener
	setCallbacks map[ids.ID][]SetCallbackListener
}

// AddValidator registers nodeID as a validator of netID with the given
// voting light, creating the network's set if this is its first member.
func (m *manager) AddValidator(netID ids.ID, nodeID ids.NodeID, light uint64) error {
	if m.validators[netID] == nil {
		m.validators[netID] = make(map[ids.NodeID]*GetValidatorOutput)
	}
	m.validators[netID][nodeID] = &GetValidatorOutput{NodeID: nodeID, Light: light}

	for _, cb := range m.setCallbacks[netID] {
		cb.OnValidatorAdded(nodeID, light)
	}
	for _, cb := range m.callbacks {
		cb.OnValidatorAdded(netID, nodeID, light)
	}
	return nil
}

// RemoveValidator drops nodeID from netID's set.
func (m *manager) RemoveValidator(netID ids.ID, nodeID ids.NodeID) error {
	vals, ok := m.validators[netID]
	if !ok {
		return fmt.Errorf("network %s not found", netID)
	}
	v, ok := vals[nodeID]
	if !ok {
		return fmt.Errorf("validator %s not found in network %s", nodeID, netID)
	}
	delete(vals, nodeID)
	if len(vals) == 0 {
		delete(m.validators, netID)
	}

	for _, cb := range m.setCallbacks[netID] {
		cb.OnValidatorRemoved(nodeID, v.Light)
	}
	for _, cb := range m.callbacks {
		cb.OnValidatorRemoved(netID, nodeID, v.Light)
	}
	return nil
}

func (m *manager) GetValidators(netID ids.ID) (Set, error) {
	if vals, ok := m.validators[netID]; ok {
		return &validatorSet{validators: vals}, nil
	}
	return &emptySet{}, nil
}

func (m *manager) GetValidator(netID ids.ID, nodeID ids.NodeID) (*GetValidatorOutput, bool) {
	if vals, ok := m.validators[netID]; ok {
		if v, ok := vals[nodeID]; ok {
			return v, true
		}
	}
	return nil, false
}

func (m *manager) GetLight(netID ids.ID, nodeID ids.NodeID) uint64 {
	if v, ok := m.GetValidator(netID, nodeID); ok {
		return v.Light
	}
	return 0
}

func (m *manager) TotalLight(netID ids.ID) (uint64, error) {
	set, err := m.GetValidators(netID)
	if err != nil {
		return 0, err
	}
	return set.Light(), nil
}

func (m *manager) RegisterCallbackListener(listener ManagerCallbackListener) {
	m.callbacks = append(m.callbacks, listener)
}

func (m *manager) RegisterSetCallbackListener(netID ids.ID, listener SetCallbackListener) {
	m.setCallbacks[netID] = append(m.setCallbacks[netID], listener)
}

// SubsetLight returns the total light held by the given subset of nodeIDs.
func (m *manager) SubsetLight(netID ids.ID, nodeIDs set.Set[ids.NodeID]) uint64 {
	var total uint64
	if vals, ok := m.validators[netID]; ok {
		for nodeID := range nodeIDs {
			if v, ok := vals[nodeID]; ok {
				total += v.Light
			}
		}
	}
	return total
}

// validatorSet is the Set returned for a populated network.
type validatorSet struct {
	validators map[ids.NodeID]*GetValidatorOutput
}

func (s *validatorSet) Has(nodeID ids.NodeID) bool {
	_, ok := s.validators[nodeID]
	return ok
}

func (s *validatorSet) Len() int { return len(s.validators) }

func (s *validatorSet) List() []Validator {
	vals := make([]Validator, 0, len(s.validators))
	for _, v := range s.validators {
		vals = append(vals, &ValidatorImpl{NodeID: v.NodeID, LightVal: v.Light})
	}
	return vals
}

func (s *validatorSet) Light() uint64 {
	var total uint64
	for _, v := range s.validators {
		total += v.Light
	}
	return total
}

// Sample returns up to size distinct node IDs. Selection is unweighted; it
// is the caller's job to weigh responses by light after the fact.
func (s *validatorSet) Sample(size int) ([]ids.NodeID, error) {
	nodeIDs := make([]ids.NodeID, 0, size)
	for nodeID := range s.validators {
		if len(nodeIDs) >= size {
			break
		}
		nodeIDs = append(nodeIDs, nodeID)
	}
	return nodeIDs, nil
}

// emptySet is returned for networks with no registered validators.
type emptySet struct{}

func (s *emptySet) Has(ids.NodeID) bool                         { return false }
func (s *emptySet) Len() int                                    { return 0 }
func (s *emptySet) List() []Validator                           { return nil }
func (s *emptySet) Light() uint64                               { return 0 }
func (s *emptySet) Sample(size int) ([]ids.NodeID, error)       { return nil, nil }
