package xrun

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_Empty(t *testing.T) {
	g, _ := NewGroup(context.Background())
	if err := g.Wait(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGroup_ErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	var cancelled atomic.Bool

	//nolint:staticcheck // nil ctx 归一化
	g, _ := NewGroup(nil, WithName("test"), nil)
	g.GoWithName("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	g.GoWithName("failer", func(context.Context) error { return boom })

	if err := g.Wait(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !cancelled.Load() {
		t.Error("waiter was not cancelled")
	}
}

func TestGroup_CancelCause(t *testing.T) {
	cause := errors.New("shutdown requested")
	g, ctx := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	g.Cancel(cause)

	if err := g.Wait(); !errors.Is(err, cause) {
		t.Fatalf("expected cause, got %v", err)
	}
	if ctx.Err() == nil {
		t.Error("group context not cancelled")
	}
}

func TestGroup_CancelNil(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	g.Cancel(nil)
	if err := g.Wait(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestGroup_ServiceOwnCanceled(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(func(context.Context) error { return context.Canceled })
	if err := g.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from service, got %v", err)
	}
}

func TestGroup_NilFunc(t *testing.T) {
	g, _ := NewGroup(context.Background())
	g.Go(nil)
	if err := g.Wait(); !errors.Is(err, ErrNilFunc) {
		t.Errorf("expected ErrNilFunc, got %v", err)
	}

	g, _ = NewGroup(context.Background())
	g.GoWithName("nil", nil)
	if err := g.Wait(); !errors.Is(err, ErrNilFunc) {
		t.Errorf("expected ErrNilFunc, got %v", err)
	}
}

func TestGroup_Context(t *testing.T) {
	g, ctx := NewGroup(context.Background())
	if g.Context() != ctx {
		t.Error("Context() differs from NewGroup ctx")
	}
	_ = g.Wait()
}

func TestServe_StopOnCancel(t *testing.T) {
	unblock := make(chan struct{})
	var stopped atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	svc := Serve(func(context.Context) error {
		<-unblock
		return errors.New("use of closed descriptor")
	}, func() error {
		stopped.Add(1)
		close(unblock)
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- svc(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("expected nil error after stop, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	if stopped.Load() != 1 {
		t.Errorf("stop called %d times", stopped.Load())
	}
}

func TestServe_StopError(t *testing.T) {
	stopErr := errors.New("close failed")
	unblock := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(func(context.Context) error {
		<-unblock
		return nil
	}, func() error {
		close(unblock)
		return stopErr
	})(ctx)
	if !errors.Is(err, stopErr) {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestServe_ServeReturnsFirst(t *testing.T) {
	serveErr := errors.New("accept failed")
	var stopped atomic.Bool

	err := Serve(func(context.Context) error { return serveErr }, func() error {
		stopped.Store(true)
		return nil
	})(context.Background())
	if !errors.Is(err, serveErr) {
		t.Errorf("expected serve error, got %v", err)
	}
	if stopped.Load() {
		t.Error("stop must not run when serve exits on its own")
	}
}

func TestServe_Nil(t *testing.T) {
	if err := Serve(nil, func() error { return nil })(context.Background()); !errors.Is(err, ErrNilFunc) {
		t.Errorf("expected ErrNilFunc, got %v", err)
	}
	if err := Serve(func(context.Context) error { return nil }, nil)(context.Background()); !errors.Is(err, ErrNilFunc) {
		t.Errorf("expected ErrNilFunc, got %v", err)
	}
}
