package simnode

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// Update describes a value change on a simulated node.
type Update struct {
	// ValueID identifies the changed value.
	ValueID fixture.ValueID

	// Value is the new current value.
	Value any

	// Internal is true for simulation-side updates, false for writes
	// arriving from the outside.
	Internal bool
}

// UpdateListener receives value change notifications.
type UpdateListener func(Update)

// SimNode is a running simulated node backed by a fixture.
type SimNode struct {
	fixture   *fixture.Node
	sessionID string

	values map[string]*storedValue
	order  []string // value IDs in fixture order

	mu        sync.RWMutex
	listeners []UpdateListener
}

// New creates a simulated node from a fixture. Each instance gets a
// fresh session ID.
func New(n *fixture.Node) *SimNode {
	s := &SimNode{
		fixture:   n,
		sessionID: uuid.NewString(),
		values:    make(map[string]*storedValue, len(n.Values)),
	}
	for i := range n.Values {
		v := &n.Values[i]
		id := v.ID().String()
		s.values[id] = newStoredValue(v)
		s.order = append(s.order, id)
	}
	return s
}

// SessionID returns the unique identifier of this simulation run.
func (s *SimNode) SessionID() string {
	return s.sessionID
}

// Fixture returns the fixture the node was built from. The fixture's
// values hold the initial state, not the current one; use Snapshot for
// current values.
func (s *SimNode) Fixture() *fixture.Node {
	return s.fixture
}

// NodeID returns the node's network identifier.
func (s *SimNode) NodeID() int {
	return s.fixture.NodeID
}

// ValueIDs returns all value identifiers in fixture order.
func (s *SimNode) ValueIDs() []fixture.ValueID {
	ids := make([]fixture.ValueID, 0, len(s.order))
	for _, id := range s.order {
		ids = append(ids, s.values[id].ID())
	}
	return ids
}

// Metadata returns the metadata for a value.
func (s *SimNode) Metadata(id fixture.ValueID) (fixture.Metadata, error) {
	v, ok := s.values[id.String()]
	if !ok {
		return fixture.Metadata{}, fmt.Errorf("%w: %s", ErrValueNotFound, id)
	}
	return v.Metadata(), nil
}

// Get reads a value's current state.
func (s *SimNode) Get(id fixture.ValueID) (any, error) {
	v, ok := s.values[id.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrValueNotFound, id)
	}
	return v.Get()
}

// GetString reads a value addressed by its canonical string form.
func (s *SimNode) GetString(id string) (any, error) {
	vid, err := fixture.ParseValueID(id)
	if err != nil {
		return nil, err
	}
	return s.Get(vid)
}

// Set writes a value from the outside, enforcing the writeable flag and
// the value metadata. Listeners are notified when the value changed.
func (s *SimNode) Set(id fixture.ValueID, value any) error {
	return s.set(id, value, false)
}

// SetInternal updates a value from the simulation side, bypassing the
// writeable check.
func (s *SimNode) SetInternal(id fixture.ValueID, value any) error {
	return s.set(id, value, true)
}

func (s *SimNode) set(id fixture.ValueID, value any, internal bool) error {
	v, ok := s.values[id.String()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrValueNotFound, id)
	}

	var changed bool
	var err error
	if internal {
		changed, err = v.SetInternal(value)
	} else {
		changed, err = v.Set(value)
	}
	if err != nil {
		return err
	}

	if changed {
		s.notify(Update{ValueID: v.ID(), Value: value, Internal: internal})
	}
	return nil
}

// Subscribe registers a listener for value updates. Listeners are
// called synchronously from the updating goroutine.
func (s *SimNode) Subscribe(listener UpdateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *SimNode) notify(u Update) {
	s.mu.RLock()
	listeners := make([]UpdateListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(u)
	}
}

// DirtyValueIDs returns the IDs of values changed since their dirty
// flags were last cleared.
func (s *SimNode) DirtyValueIDs() []fixture.ValueID {
	var ids []fixture.ValueID
	for _, id := range s.order {
		if s.values[id].IsDirty() {
			ids = append(ids, s.values[id].ID())
		}
	}
	return ids
}

// ClearDirty clears all dirty flags.
func (s *SimNode) ClearDirty() {
	for _, v := range s.values {
		v.ClearDirty()
	}
}

// Snapshot returns a fixture carrying the node's current values. The
// result is independent of the running node and round-trips through the
// fixture codecs.
func (s *SimNode) Snapshot() *fixture.Node {
	snap := s.fixture.Clone()
	for i := range snap.Values {
		id := snap.Values[i].ID().String()
		if v, ok := s.values[id]; ok {
			snap.Values[i].Current = v.Current()
		}
	}
	return snap
}
