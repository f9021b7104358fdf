package avalanche

import (
	"context"
	"sync"

	"github.com/luxfi/coreavalanche/set"
	"github.com/luxfi/coreavalanche/validators"
	"github.com/luxfi/ids"
)

// PeerRegistry enumerates connected peers for poll selection, indicating
// which ones advertise the avalanche capability.
type PeerRegistry interface {
	// ForEachNode calls fn once per connected peer with its avalanche
	// capability flag. Iteration order is unspecified.
	ForEachNode(fn func(nodeID ids.NodeID, avalancheCapable bool))
}

// ValidatorPeerRegistry is a PeerRegistry backed by a validators.Manager: it
// reports every validator of netID that is currently connected, tagged with
// whether that peer has advertised the avalanche capability over the wire.
// It also implements validators.Connector so it can be registered directly
// with a connection-tracking component.
type ValidatorPeerRegistry struct {
	manager validators.Manager
	netID   ids.ID

	mu        sync.RWMutex
	connected set.Set[ids.NodeID]
	capable   set.Set[ids.NodeID]
}

// NewValidatorPeerRegistry returns a PeerRegistry over netID's validator set.
func NewValidatorPeerRegistry(manager validators.Manager, netID ids.ID) *ValidatorPeerRegistry {
	return &ValidatorPeerRegistry{
		manager:   manager,
		netID:     netID,
		connected: set.Set[ids.NodeID]{},
		capable:   set.Set[ids.NodeID]{},
	}
}

// Connected marks nodeID as connected.
func (r *ValidatorPeerRegistry) Connected(_ context.Context, nodeID ids.NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected.Add(nodeID)
	return nil
}

// Disconnected marks nodeID as disconnected and clears its capability flag.
func (r *ValidatorPeerRegistry) Disconnected(_ context.Context, nodeID ids.NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected.Remove(nodeID)
	r.capable.Remove(nodeID)
	return nil
}

// SetAvalancheCapable records that nodeID has (or hasn't) advertised the
// avalanche capability, typically learned from a version handshake.
func (r *ValidatorPeerRegistry) SetAvalancheCapable(nodeID ids.NodeID, capable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if capable {
		r.capable.Add(nodeID)
	} else {
		r.capable.Remove(nodeID)
	}
}

// ForEachNode implements PeerRegistry.
func (r *ValidatorPeerRegistry) ForEachNode(fn func(nodeID ids.NodeID, avalancheCapable bool)) {
	r.mu.RLock()
	connected := r.connected.List()
	capable := r.capable.Clone()
	r.mu.RUnlock()

	vs, err := r.manager.GetValidators(r.netID)
	if err != nil {
		return
	}
	for _, nodeID := range connected {
		if !vs.Has(nodeID) {
			continue
		}
		fn(nodeID, capable.Contains(nodeID))
	}
}
