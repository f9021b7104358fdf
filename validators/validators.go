// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validators tracks the set of peers an avalanche network instance
// queries when polling for block acceptance. It is deliberately narrow: it
// knows node identities and relative voting light, not staking mechanics.
package validators

import (
	"context"

	"github.com/luxfi/ids"
)

// State gives the avalanche engine read access to the validator set at a
// given height, the same way a node's chain state does.
type State interface {
	GetValidatorSet(ctx context.Context, height uint64, netID ids.ID) (map[ids.NodeID]*GetValidatorOutput, error)
	GetCurrentValidators(ctx context.Context, netID ids.ID) (map[ids.NodeID]*GetValidatorOutput, error)
}

// GetValidatorOutput describes a single validator as returned by State.
type GetValidatorOutput struct {
	NodeID ids.NodeID
	Light  uint64
}

// Set is a point-in-time view over a validator set, used to pick poll
// targets and weigh their votes.
type Set interface {
	Has(ids.NodeID) bool
	Len() int
	List() []Validator
	Light() uint64
	Sample(size int) ([]ids.NodeID, error)
}

// Validator is a single member of a Set.
type Validator interface {
	ID() ids.NodeID
	Light() uint64
}

// ValidatorImpl is the concrete Validator the rest of this package returns.
type ValidatorImpl struct {
	NodeID   ids.NodeID
	LightVal uint64
}

func (v *ValidatorImpl) ID() ids.NodeID { return v.NodeID }
func (v *ValidatorImpl) Light() uint64  { return v.LightVal }

// Manager owns validator sets across one or more networks and notifies
// callbacks as light changes.
type Manager interface {
	GetValidators(netID ids.ID) (Set, error)
	GetLight(netID ids.ID, nodeID ids.NodeID) uint64
	TotalLight(netID ids.ID) (uint64, error)
	RegisterCallbackListener(listener ManagerCallbackListener)
	RegisterSetCallbackListener(netID ids.ID, listener SetCallbackListener)
}

// SetCallbackListener is notified of changes to a single network's set.
type SetCallbackListener interface {
	OnValidatorAdded(nodeID ids.NodeID, light uint64)
	OnValidatorRemoved(nodeID ids.NodeID, light uint64)
	OnValidatorLightChanged(nodeID ids.NodeID, oldLight, newLight uint64)
}

// ManagerCallbackListener is notified of changes across all networks.
type ManagerCallbackListener interface {
	OnValidatorAdded(netID ids.ID, nodeID ids.NodeID, light uint64)
	OnValidatorRemoved(netID ids.ID, nodeID ids.NodeID, light uint64)
	OnValidatorLightChanged(netID ids.ID, nodeID ids.NodeID, oldLight, newLight uint64)
}

// Connector is notified when a peer comes online or drops, so in-flight
// polls to that peer can be abandoned.
type Connector interface {
	Connected(ctx context.Context, nodeID ids.NodeID) error
	Disconnected(ctx context.Context, nodeID ids.NodeID) error
}
