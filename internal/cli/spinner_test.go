package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerStopsWithContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Fetching")
			s.Start()
			select {
			case <-s.stopped:
			case <-time.After(time.Second):
				t.Fatal("spinner kept running after its context ended")
			}
			if !s.Cancelled() {
				t.Error("Cancelled() = false")
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Precaching")
	s.Start()
	s.Stop()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after Stop")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	done := make(chan struct{})
	go func() {
		newSpinner("never started").Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that never started")
	}
}

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Fetching")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("spinner drew on a non-terminal: %q", buf.String())
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	s := newSpinner("Precaching")
	s.Start()
	s.StopWithSuccess("Precached")

	s = newSpinner("Precaching")
	s.Start()
	s.StopWithError("Precache failed")
}
