package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Request is any value dispatched through the mediator. Handlers are
// selected by the request's dynamic type.
type Request = any

// Handler produces the response for one request type.
type Handler interface {
	Handle(ctx context.Context, req Request) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, req Request) (any, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (any, error) {
	return f(ctx, req)
}

// Next invokes the rest of the pipeline: the following behaviors and,
// finally, the handler.
type Next func(ctx context.Context) (any, error)

// Behavior is a cross-cutting stage wrapped around every request.
// A behavior decides whether and when to call next, and may return without
// calling it at all.
type Behavior interface {
	Handle(ctx context.Context, req Request, next Next) (any, error)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(ctx context.Context, req Request, next Next) (any, error)

// Handle calls f.
func (f BehaviorFunc) Handle(ctx context.Context, req Request, next Next) (any, error) {
	return f(ctx, req, next)
}

// Sender dispatches requests. Mediator implements it; consumers such as the
// HTTP layer depend on this interface only.
type Sender interface {
	Send(ctx context.Context, req Request) (any, error)
}

// Mediator routes requests to their handler through an ordered chain of
// behaviors. The first behavior added is the outermost one.
type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]Handler
	behaviors []Behavior
	logger    *zap.Logger
}

var _ Sender = (*Mediator)(nil)

// NewMediator creates a mediator with the given behaviors, outermost first.
func NewMediator(logger *zap.Logger, behaviors ...Behavior) *Mediator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mediator{
		handlers:  make(map[reflect.Type]Handler),
		behaviors: append([]Behavior(nil), behaviors...),
		logger:    logger,
	}
}

// Register binds handler to the dynamic type of sample. A later
// registration for the same type replaces the earlier one.
func (m *Mediator) Register(sample Request, handler Handler) {
	t := reflect.TypeOf(sample)

	m.mu.Lock()
	m.handlers[t] = handler
	m.mu.Unlock()

	m.logger.Debug("registered request handler",
		zap.String("request", RequestName(sample)))
}

// RegisterHandler binds a typed handler function for requests of type R.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function.
func RegisterHandler[R any, T any](m *Mediator, fn func(ctx context.Context, req R) (T, error)) {
	var sample R
	m.Register(sample, HandlerFunc(func(ctx context.Context, req Request) (any, error) {
		typed, ok := req.(R)
		if !ok {
			return nil, unexpectedRequest(req, sample)
		}
		return fn(ctx, typed)
	}))
}

// AddBehavior appends a behavior as the new innermost stage.
func (m *Mediator) AddBehavior(behavior Behavior) {
	m.mu.Lock()
	m.behaviors = append(m.behaviors, behavior)
	m.mu.Unlock()

	m.logger.Info("added behavior to mediator pipeline",
		zap.String("behavior", fmt.Sprintf("%T", behavior)))
}

// Behaviors returns a copy of the registered behaviors, outermost first.
func (m *Mediator) Behaviors() []Behavior {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Behavior(nil), m.behaviors...)
}

// Send dispatches req through the behavior chain to its handler. ctx is
// passed unchanged to every stage.
func (m *Mediator) Send(ctx context.Context, req Request) (any, error) {
	if req == nil {
		return nil, errNilRequest()
	}

	m.mu.RLock()
	handler, ok := m.handlers[reflect.TypeOf(req)]
	behaviors := m.behaviors
	m.mu.RUnlock()

	if !ok {
		return nil, noHandler(req)
	}

	next := Next(func(ctx context.Context) (any, error) {
		return handler.Handle(ctx, req)
	})
	for i := len(behaviors) - 1; i >= 0; i-- {
		behavior, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return behavior.Handle(ctx, req, inner)
		}
	}

	return next(ctx)
}

// Send is a type-safe wrapper around Sender.Send. A nil response yields the
// zero value of T.
func Send[T any](ctx context.Context, sender Sender, req Request) (T, error) {
	var zero T

	result, err := sender.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, unexpectedResult(req, result, zero)
	}
	return typed, nil
}
