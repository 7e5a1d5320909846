package value

import (
	"errors"
	"fmt"
)

// ErrNoHandler indicates a [Dispatcher] has no registered handler for a
// type it was asked to dispatch.
var ErrNoHandler = errors.New("no handler registered")

// Handler processes a Value known to match a particular [Type].
type Handler func(v Value) error

// Dispatcher is a plain closure table of (Type -> Handler). Handler
// ordering for iteration follows [AllTypes] (enum declaration order).
type Dispatcher struct {
	handlers map[Type]Handler
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Type]Handler, len(typeNames))}
}

// On registers h as the handler for t, returning the Dispatcher for
// chaining.
func (d *Dispatcher) On(t Type, h Handler) *Dispatcher {
	d.handlers[t] = h

	return d
}

// Dispatch invokes the handler registered for v's type. Returns
// [ErrNoHandler] if none is registered.
func (d *Dispatcher) Dispatch(v Value) error {
	h, ok := d.handlers[v.typ]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, v.typ)
	}

	return h(v)
}

// Complete reports whether every [Type] in [AllTypes] has a registered
// handler.
func (d *Dispatcher) Complete() bool {
	for _, t := range AllTypes() {
		if _, ok := d.handlers[t]; !ok {
			return false
		}
	}

	return true
}
