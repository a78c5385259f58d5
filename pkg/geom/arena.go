package geom

import (
	"fmt"

	"github.com/matzehuels/roomgen/pkg/errors"
)

// ID addresses a container registered in an [Arena]. The zero value means
// "no owner".
type ID int

// NoOwner marks a container that lives in the root frame.
const NoOwner ID = 0

// Arena stores the containers that can own other containers.
//
// An Arena is not safe for concurrent use. It is owned by a single
// generation task, which is the only writer.
type Arena struct {
	containers []Container
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Register stores c and returns its ID. The owner of c must already be
// registered in this arena.
func (a *Arena) Register(c Container) (ID, error) {
	if c.arena != nil && c.arena != a {
		return NoOwner, errors.New(errors.ErrCodeInvalidOwner, "container belongs to a different arena")
	}
	next := ID(len(a.containers) + 1)
	if err := a.checkOwner(c.owner, next); err != nil {
		return NoOwner, err
	}
	c.arena = a
	a.containers = append(a.containers, c)
	return next, nil
}

// Update replaces the container stored under id. The replacement must keep an
// owner registered before id.
func (a *Arena) Update(id ID, c Container) error {
	if !a.has(id) {
		return errors.New(errors.ErrCodeInvalidOwner, "unknown container id %d", id)
	}
	if err := a.checkOwner(c.owner, id); err != nil {
		return err
	}
	c.arena = a
	a.containers[id-1] = c
	return nil
}

// Get returns the container stored under id. It panics on an unknown id;
// owners are validated on registration so this only trips on misuse.
func (a *Arena) Get(id ID) Container {
	if !a.has(id) {
		panic(fmt.Sprintf("geom: unknown container id %d", id))
	}
	return a.containers[id-1]
}

// Depth returns the depth of the container stored under id.
func (a *Arena) Depth(id ID) Depth {
	return a.Get(id).Depth()
}

// Len returns the number of registered containers.
func (a *Arena) Len() int { return len(a.containers) }

// Reset discards every registered container. Containers obtained before the
// reset must not be used afterwards.
func (a *Arena) Reset() {
	clear(a.containers)
	a.containers = a.containers[:0]
}

func (a *Arena) has(id ID) bool {
	return id > NoOwner && int(id) <= len(a.containers)
}

func (a *Arena) checkOwner(owner, self ID) error {
	if owner == NoOwner {
		return nil
	}
	if !a.has(owner) || owner >= self {
		return errors.New(errors.ErrCodeInvalidOwner, "owner %d must be registered before container %d", owner, self)
	}
	return nil
}
