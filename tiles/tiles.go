// Package tiles implements the tile registry: a fixed-capacity table from small
// integer tile IDs to immutable tile descriptors.
//
// A registry is populated once during startup, then frozen. Map models resolve
// the IDs stored in their layers through it while rendering.
package tiles

import (
	"fmt"
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Capacity is the number of slots in a Registry. Valid tile IDs are 0..Capacity-1,
// with 0 reserved for the empty tile.
const Capacity = 32

var (
	// ErrInvalidTileID is returned for tile IDs that are negative or not below Capacity.
	ErrInvalidTileID = errors.New("invalid tile id")
	// ErrMissingTileDescriptor is returned for an in-range ID with nothing registered.
	ErrMissingTileDescriptor = errors.New("missing tile descriptor")
	// ErrReservedTileID is returned when registering something at ID 0.
	ErrReservedTileID = errors.New("tile id 0 is reserved for the empty tile")
	// ErrFrozen is returned when registering into a frozen registry.
	ErrFrozen = errors.New("tile registry is frozen")
)

// Descriptor describes one kind of tile. Descriptors are passed by value and
// never change once registered.
type Descriptor struct {
	ID    int
	Name  string
	Image image.Image
	Solid bool
}

// Empty is what Lookup returns for tile ID 0. Nothing is drawn for it.
var Empty = Descriptor{}

// IsEmpty reports whether d is the empty tile.
func (d Descriptor) IsEmpty() bool {
	return d.ID == 0
}

func (d Descriptor) String() string {
	if d.IsEmpty() {
		return "<empty tile>"
	}
	return fmt.Sprintf("<tile %d %q solid=%t>", d.ID, d.Name, d.Solid)
}

// Registry maps tile IDs to descriptors.
type Registry struct {
	slots  [Capacity]*Descriptor
	frozen bool
}

// NewRegistry returns an empty, writable registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores d under d.ID. Registering an ID a second time replaces the
// earlier descriptor.
func (r *Registry) Register(d Descriptor) error {
	if r.frozen {
		return errors.Wrapf(ErrFrozen, "registering tile %d", d.ID)
	}
	if d.ID == 0 {
		return ErrReservedTileID
	}
	if d.ID < 0 || d.ID >= Capacity {
		return errors.Wrapf(ErrInvalidTileID, "registering tile %d (capacity %d)", d.ID, Capacity)
	}
	if r.slots[d.ID] != nil {
		glog.V(2).Infof("tile %d: replacing %v with %v", d.ID, *r.slots[d.ID], d)
	}
	stored := d
	r.slots[d.ID] = &stored
	return nil
}

// MustRegister is like Register but panics on error. Meant for startup code
// registering compiled-in tiles.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Freeze makes the registry read-only. Any later Register call fails.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Lookup resolves a tile ID.
//
// ID 0 resolves to Empty without error. IDs outside the registry's range fail
// with ErrInvalidTileID; in-range IDs with nothing registered fail with
// ErrMissingTileDescriptor.
func (r *Registry) Lookup(id int) (Descriptor, error) {
	if id == 0 {
		return Empty, nil
	}
	if id < 0 || id >= Capacity {
		return Empty, errors.Wrapf(ErrInvalidTileID, "tile id %d not in [0,%d)", id, Capacity)
	}
	d := r.slots[id]
	if d == nil {
		return Empty, errors.Wrapf(ErrMissingTileDescriptor, "tile id %d", id)
	}
	return *d, nil
}

// Count returns the number of registered descriptors.
func (r *Registry) Count() int {
	n := 0
	for _, d := range r.slots {
		if d != nil {
			n++
		}
	}
	return n
}

// IDs returns the registered IDs in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, Capacity)
	for id, d := range r.slots {
		if d != nil {
			ids = append(ids, id)
		}
	}
	return ids
}
