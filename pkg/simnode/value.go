package simnode

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/zwsim-project/zwsim-go/pkg/fixture"
)

// Value errors.
var (
	ErrValueNotWriteable = errors.New("value is not writeable")
	ErrValueNotReadable  = errors.New("value is not readable")
	ErrValueType         = errors.New("invalid value type")
	ErrValueOutOfRange   = errors.New("value out of range")
	ErrValueUnknownState = errors.New("value is not an enumerated state")
	ErrValueNotFound     = errors.New("value not found")
)

// storedValue holds one value's current state behind a lock.
type storedValue struct {
	mu       sync.RWMutex
	id       fixture.ValueID
	metadata fixture.Metadata
	current  any
	dirty    bool // changed since last ClearDirty
}

func newStoredValue(v *fixture.Value) *storedValue {
	return &storedValue{
		id:       v.ID(),
		metadata: v.Metadata,
		current:  v.Current,
	}
}

// ID returns the value's identifier.
func (v *storedValue) ID() fixture.ValueID {
	return v.id
}

// Metadata returns the value's metadata.
func (v *storedValue) Metadata() fixture.Metadata {
	return v.metadata
}

// Get returns the current value. Write-only values return
// ErrValueNotReadable.
func (v *storedValue) Get() (any, error) {
	if !v.metadata.Readable {
		return nil, ErrValueNotReadable
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, nil
}

// Set updates the value from the outside. Returns an error if the value
// is not writeable or the new value violates the metadata.
func (v *storedValue) Set(value any) (bool, error) {
	if !v.metadata.Writeable {
		return false, ErrValueNotWriteable
	}
	return v.setInternal(value)
}

// SetInternal updates the value without checking write access. Used by
// the simulation to update read-only sensor values.
func (v *storedValue) SetInternal(value any) (bool, error) {
	return v.setInternal(value)
}

func (v *storedValue) setInternal(value any) (bool, error) {
	if value != nil {
		if err := v.validate(value); err != nil {
			return false, err
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if valuesEqual(v.current, value) {
		return false, nil
	}
	v.current = value
	v.dirty = true
	return true, nil
}

// valuesEqual compares two current values. Untyped fixture values can be
// arrays or objects, which do not support ==.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := toFloat64(a); ok {
		if bn, ok := toFloat64(b); ok {
			return an == bn
		}
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// validate checks the value against the declared type, bounds, and
// enumerated states.
func (v *storedValue) validate(value any) error {
	switch v.metadata.Type {
	case fixture.TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: expected boolean", ErrValueType)
		}
	case fixture.TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: expected string", ErrValueType)
		}
	case fixture.TypeNumber:
		n, ok := toFloat64(value)
		if !ok {
			return fmt.Errorf("%w: expected number", ErrValueType)
		}
		if err := v.checkBounds(n); err != nil {
			return err
		}
		if err := v.checkStates(n); err != nil {
			return err
		}
	case fixture.TypeAny, "":
		if n, ok := toFloat64(value); ok {
			if err := v.checkBounds(n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *storedValue) checkBounds(n float64) error {
	if v.metadata.Min != nil && n < *v.metadata.Min {
		return fmt.Errorf("%w: %v < %v", ErrValueOutOfRange, n, *v.metadata.Min)
	}
	if v.metadata.Max != nil && n > *v.metadata.Max {
		return fmt.Errorf("%w: %v > %v", ErrValueOutOfRange, n, *v.metadata.Max)
	}
	return nil
}

func (v *storedValue) checkStates(n float64) error {
	if len(v.metadata.States) == 0 {
		return nil
	}
	key := strconv.FormatFloat(n, 'f', -1, 64)
	if _, ok := v.metadata.States[key]; !ok {
		return fmt.Errorf("%w: %s", ErrValueUnknownState, key)
	}
	return nil
}

// Current returns the raw current value without the readable check.
func (v *storedValue) Current() any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// IsDirty returns true if the value changed since the last ClearDirty.
func (v *storedValue) IsDirty() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dirty
}

// ClearDirty clears the dirty flag.
func (v *storedValue) ClearDirty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty = false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
