package mrbox

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// mockRenderer implements screenshotRenderer for testing.
type mockRenderer struct {
	mu       sync.Mutex
	png      []byte
	err      error
	gotHTML  string
	gotVP    viewport
	calls    int
	closed   bool
	closeErr error
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string, vp viewport) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.gotVP = vp
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	m.gotHTML = string(content)
	return m.png, m.err
}

func (m *mockRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return m.closeErr
}

func TestSnapshotter_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("renders document at default viewport", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{png: []byte("\x89PNG")}
		s := NewSnapshotter(withRenderer(mock))

		png, err := s.Snapshot(context.Background(), "<html>box</html>")
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if string(png) != "\x89PNG" {
			t.Errorf("Snapshot() = %q, want renderer output", png)
		}
		if mock.gotHTML != "<html>box</html>" {
			t.Errorf("renderer saw %q, want the composed document", mock.gotHTML)
		}
		if mock.gotVP != (viewport{Width: DefaultFrameWidth, Height: DefaultFrameHeight}) {
			t.Errorf("viewport = %+v, want %dx%d", mock.gotVP, DefaultFrameWidth, DefaultFrameHeight)
		}
	})

	t.Run("custom viewport", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{}
		s := NewSnapshotter(withRenderer(mock), WithViewport(800, 600))

		if _, err := s.Snapshot(context.Background(), "<html></html>"); err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if mock.gotVP != (viewport{Width: 800, Height: 600}) {
			t.Errorf("viewport = %+v, want 800x600", mock.gotVP)
		}
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{err: ErrPageLoad}
		s := NewSnapshotter(withRenderer(mock))

		_, err := s.Snapshot(context.Background(), "<html></html>")
		if !errors.Is(err, ErrPageLoad) {
			t.Errorf("Snapshot() error = %v, want ErrPageLoad", err)
		}
	})

	t.Run("cancelled context skips rendering", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mock := &mockRenderer{}
		s := NewSnapshotter(withRenderer(mock))

		if _, err := s.Snapshot(ctx, "<html></html>"); !errors.Is(err, context.Canceled) {
			t.Errorf("Snapshot() error = %v, want context.Canceled", err)
		}
		if mock.calls != 0 {
			t.Errorf("renderer called %d times, want 0", mock.calls)
		}
	})
}

func TestSnapshotter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{closeErr: errors.New("already gone")}
	s := NewSnapshotter(withRenderer(mock))

	if err := s.Close(); err == nil || !strings.Contains(err.Error(), "already gone") {
		t.Errorf("Close() error = %v, want renderer close error", err)
	}
	if !mock.closed {
		t.Error("Close() did not close the renderer")
	}
}

func TestSnapshotOptions_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{name: "zero width", fn: func() { WithViewport(0, 720) }},
		{name: "negative height", fn: func() { WithViewport(1280, -1) }},
		{name: "zero timeout", fn: func() { WithSnapshotTimeout(0) }},
		{name: "negative timeout", fn: func() { WithSnapshotTimeout(-time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRodRenderer_InvalidViewport(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second)
	_, err := r.RenderFromFile(context.Background(), "/tmp/unused.html", viewport{Width: 0, Height: 720})
	if !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("RenderFromFile() error = %v, want ErrInvalidViewport", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused renderer error = %v", err)
	}
}
