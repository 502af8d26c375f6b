package component

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	registerName(id, reflect.TypeFor[T]().Name())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

type ComponentID uint32

var nextComponentID atomic.Uint32

var (
	namesMu sync.RWMutex
	names   = map[ComponentID]string{}
)

func registerName(id ComponentID, name string) {
	namesMu.Lock()
	names[id] = name
	namesMu.Unlock()
}

// NameOf is the Go type name a component id was registered with, used by the
// debug overlay.
func NameOf(id ComponentID) string {
	namesMu.RLock()
	defer namesMu.RUnlock()
	return names[id]
}
