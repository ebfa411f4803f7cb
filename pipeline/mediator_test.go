package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap/zaptest"
)

type pingQuery struct {
	Value string
}

type pongResult struct {
	Echo string
}

type unhandledQuery struct{}

type ctxKey struct{}

func newTestMediator(t *testing.T, behaviors ...Behavior) *Mediator {
	t.Helper()
	return NewMediator(zaptest.NewLogger(t), behaviors...)
}

func TestMediator_SendRoutesByType(t *testing.T) {
	m := newTestMediator(t)

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (pongResult, error) {
		return pongResult{Echo: q.Value}, nil
	})
	RegisterHandler(m, func(ctx context.Context, q *pingQuery) (string, error) {
		return "pointer:" + q.Value, nil
	})

	got, err := Send[pongResult](context.Background(), m, pingQuery{Value: "hi"})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if got.Echo != "hi" {
		t.Errorf("expected echo hi, got %q", got.Echo)
	}

	ptr, err := Send[string](context.Background(), m, &pingQuery{Value: "there"})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if ptr != "pointer:there" {
		t.Errorf("expected pointer handler, got %q", ptr)
	}
}

func TestMediator_NoHandler(t *testing.T) {
	m := newTestMediator(t)

	_, err := m.Send(context.Background(), unhandledQuery{})
	if err == nil {
		t.Fatal("expected error for unregistered request")
	}
	if !HasTextCode(err, CodeHandlerNotFound) {
		t.Errorf("expected %s, got %v", CodeHandlerNotFound, err)
	}
	if !IsCategory(err, goerrors.CategoryInternal) {
		t.Errorf("expected internal category, got %v", err)
	}
}

func TestMediator_NilRequest(t *testing.T) {
	m := newTestMediator(t)

	if _, err := m.Send(context.Background(), nil); !HasTextCode(err, CodeNilRequest) {
		t.Errorf("expected %s, got %v", CodeNilRequest, err)
	}
}

func TestMediator_HandlerErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	m := newTestMediator(t, NewLoggingBehavior(zaptest.NewLogger(t)))

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) {
		return "", boom
	})

	_, err := m.Send(context.Background(), pingQuery{})
	if err != boom {
		t.Errorf("expected the handler error itself, got %v", err)
	}
}

func TestMediator_BehaviorOrder(t *testing.T) {
	var mu sync.Mutex
	var trace []string
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		trace = append(trace, s)
	}

	stage := func(name string) Behavior {
		return BehaviorFunc(func(ctx context.Context, req Request, next Next) (any, error) {
			record(name + ":before")
			res, err := next(ctx)
			record(name + ":after")
			return res, err
		})
	}

	m := newTestMediator(t, stage("outer"))
	m.AddBehavior(stage("inner"))

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) {
		record("handler")
		return "ok", nil
	})

	if _, err := m.Send(context.Background(), pingQuery{}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	want := "[outer:before inner:before handler inner:after outer:after]"
	if got := fmt.Sprint(trace); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	if len(m.Behaviors()) != 2 {
		t.Errorf("expected 2 behaviors, got %d", len(m.Behaviors()))
	}
}

func TestMediator_ShortCircuit(t *testing.T) {
	handlerCalls := 0
	m := newTestMediator(t, BehaviorFunc(func(ctx context.Context, req Request, next Next) (any, error) {
		return "short", nil
	}))

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) {
		handlerCalls++
		return "handler", nil
	})

	got, err := Send[string](context.Background(), m, pingQuery{})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if got != "short" || handlerCalls != 0 {
		t.Errorf("expected short-circuit, got %q with %d handler calls", got, handlerCalls)
	}
}

func TestMediator_ContextForwarded(t *testing.T) {
	m := newTestMediator(t, NewLoggingBehavior(zaptest.NewLogger(t)), NewValidationBehavior(zaptest.NewLogger(t)))

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) {
		v, _ := ctx.Value(ctxKey{}).(string)
		return v, ctx.Err()
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	got, err := Send[string](ctx, m, pingQuery{})
	if err != nil || got != "marker" {
		t.Errorf("expected marker, got (%q, %v)", got, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.Send(cancelled, pingQuery{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation to reach the handler, got %v", err)
	}
}

func TestSend_NilAndMismatchedResults(t *testing.T) {
	m := newTestMediator(t)

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (*pongResult, error) {
		return nil, nil
	})
	RegisterHandler(m, func(ctx context.Context, q unhandledQuery) (int, error) {
		return 42, nil
	})

	got, err := Send[*pongResult](context.Background(), m, pingQuery{})
	if err != nil || got != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", got, err)
	}

	_, err = Send[string](context.Background(), m, unhandledQuery{})
	if !HasTextCode(err, CodeUnexpectedType) {
		t.Errorf("expected %s, got %v", CodeUnexpectedType, err)
	}
}

func TestMediator_ReRegisterReplaces(t *testing.T) {
	m := newTestMediator(t)

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) { return "first", nil })
	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) { return "second", nil })

	got, _ := Send[string](context.Background(), m, pingQuery{})
	if got != "second" {
		t.Errorf("expected later registration to win, got %q", got)
	}
}

func TestMediator_ConcurrentSend(t *testing.T) {
	m := newTestMediator(t, NewLoggingBehavior(nil))

	RegisterHandler(m, func(ctx context.Context, q pingQuery) (string, error) {
		return q.Value, nil
	})

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := fmt.Sprintf("v%d", i)
			got, err := Send[string](context.Background(), m, pingQuery{Value: want})
			if err != nil || got != want {
				errs <- fmt.Errorf("request %d: got (%q, %v)", i, got, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
