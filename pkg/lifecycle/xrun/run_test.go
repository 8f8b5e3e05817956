package xrun

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
)

// fakeSignals 替换信号注册，注册后立即投递 sig。
func fakeSignals(t *testing.T, sig os.Signal) *[]os.Signal {
	t.Helper()
	var registered []os.Signal
	origNotify, origStop := notifySignals, stopSignals
	notifySignals = func(c chan<- os.Signal, sigs ...os.Signal) {
		registered = append(registered, sigs...)
		if sig != nil {
			c <- sig
		}
	}
	stopSignals = func(chan<- os.Signal) {}
	t.Cleanup(func() { notifySignals, stopSignals = origNotify, origStop })
	return &registered
}

func TestRun_Signal(t *testing.T) {
	registered := fakeSignals(t, syscall.SIGTERM)

	err := Run(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	var sigErr *SignalError
	if !errors.As(err, &sigErr) {
		t.Fatalf("expected *SignalError, got %v", err)
	}
	if sigErr.Signal != syscall.SIGTERM {
		t.Errorf("signal = %v", sigErr.Signal)
	}
	if !errors.Is(err, ErrSignal) {
		t.Error("SignalError must match ErrSignal")
	}
	if len(*registered) != len(DefaultSignals()) {
		t.Errorf("registered %v", *registered)
	}
}

func TestRunWithOptions_CustomSignals(t *testing.T) {
	registered := fakeSignals(t, syscall.SIGINT)

	err := RunWithOptions(context.Background(), []Option{WithSignals(syscall.SIGINT)}, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	if !errors.Is(err, ErrSignal) {
		t.Fatalf("expected ErrSignal, got %v", err)
	}
	if len(*registered) != 1 || (*registered)[0] != syscall.SIGINT {
		t.Errorf("registered %v", *registered)
	}
}

func TestRun_ServicesFinish(t *testing.T) {
	fakeSignals(t, nil)
	if err := Run(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestRunWithOptions_WithoutSignals(t *testing.T) {
	registered := fakeSignals(t, syscall.SIGTERM)
	boom := errors.New("boom")

	err := RunWithOptions(context.Background(), []Option{WithoutSignals()}, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(*registered) != 0 {
		t.Errorf("signals registered without handler: %v", *registered)
	}
}

func TestSignalError(t *testing.T) {
	err := &SignalError{Signal: syscall.SIGHUP}
	if err.Error() != "xrun: received signal hangup" {
		t.Errorf("Error() = %q", err.Error())
	}
}
