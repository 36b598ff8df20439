package mrbox

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mrbox/internal/fileutil"
	"github.com/alnah/go-mrbox/internal/process"
)

// screenshotRenderer abstracts browser rendering to enable testing without a browser.
type screenshotRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, vp viewport) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ screenshotRenderer = (*rodRenderer)(nil)

// viewport is the browser window size in CSS pixels.
type viewport struct {
	Width  int
	Height int
}

// Snapshotter renders composed documents to PNG screenshots in headless Chrome.
// The browser is started lazily on the first snapshot and reused until Close.
type Snapshotter struct {
	cfg      snapshotConfig
	renderer screenshotRenderer
}

// NewSnapshotter creates a Snapshotter with a DefaultFrameWidth x DefaultFrameHeight viewport.
// Use options to customize behavior (e.g., WithViewport, WithSnapshotTimeout).
func NewSnapshotter(opts ...SnapshotOption) *Snapshotter {
	s := &Snapshotter{
		cfg: snapshotConfig{
			width:   DefaultFrameWidth,
			height:  DefaultFrameHeight,
			timeout: defaultSnapshotTimeout,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create browser renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// Snapshot renders htmlContent and returns the viewport as PNG bytes.
// The document is written to a temporary file so relative references resolve
// the way they would from a file served by the host.
func (s *Snapshotter) Snapshot(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return s.renderer.RenderFromFile(ctx, tmpPath, viewport{Width: s.cfg.width, Height: s.cfg.height})
}

// Close releases browser resources.
func (s *Snapshotter) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// rodRenderer implements screenshotRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given page load timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
// Caller must hold r.mu.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and captures the viewport.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, vp viewport) ([]byte, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	return png, nil
}

// Close releases browser resources and kills the browser process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}
