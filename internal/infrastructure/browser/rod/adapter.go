package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
)

const (
	defaultSlowMotion = 300 * time.Millisecond
	defaultTimeout    = 10 * time.Second
)

var _ output.EnvironmentPort = (*BrowserAdapter)(nil)

// BrowserAdapter implements the environment contract on top of rod. One
// adapter owns one page; element indexes handed out by Observe stay valid
// until the next Observe rebuilds the cache.
type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	logger   output.LoggerPort
	closed   bool

	captureScreenshots bool

	// elementCache maps observation indexes to live element handles.
	// Rebuilt wholesale on every Observe, like the observation itself.
	elementCache map[int]*rod.Element
}

type Config struct {
	Headless           bool
	SlowMotion         time.Duration
	Timeout            time.Duration
	NoSandbox          bool
	DevTools           bool
	CaptureScreenshots bool
}

func DefaultConfig() Config {
	return Config{
		Headless:           true,
		SlowMotion:         defaultSlowMotion,
		Timeout:            defaultTimeout,
		CaptureScreenshots: true,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg Config, log output.LoggerPort) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools)
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:            browser,
		launcher:           l,
		page:               page,
		timeout:            cfg.Timeout,
		logger:             log,
		captureScreenshots: cfg.CaptureScreenshots,
		elementCache:       make(map[int]*rod.Element),
	}, nil
}

// Observe captures a fresh snapshot: URL, title, interactive elements and an
// optional screenshot. Nothing is cached across calls except the element
// handles the snapshot itself hands out.
func (b *BrowserAdapter) Observe(ctx context.Context) (*entity.Observation, error) {
	if b.closed {
		return nil, fmt.Errorf("browser is closed")
	}

	page := b.page.Context(ctx)

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to query page info: %w", err)
	}

	elements, err := b.extractElements(page)
	if err != nil {
		return nil, fmt.Errorf("failed to extract elements: %w", err)
	}

	obs := &entity.Observation{
		URL:      info.URL,
		Title:    info.Title,
		Elements: elements,
	}

	if b.captureScreenshots {
		shot, err := b.screenshot(page)
		if err != nil {
			// A missing screenshot degrades perception but does not make the
			// environment unobservable.
			b.logger.Warn("Screenshot failed", "error", err)
		} else {
			obs.Screenshot = shot
		}
	}

	return obs, nil
}

// Execute runs one action. Failures of the action itself come back inside
// ActionResult.Error; a Go error means the environment cannot be driven at
// all.
func (b *BrowserAdapter) Execute(ctx context.Context, name entity.ActionName, args map[string]any) (*entity.ActionResult, error) {
	if b.closed {
		return nil, fmt.Errorf("browser is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := b.page.Context(ctx)
	urlBefore := b.currentURL(page)

	payload, err := b.dispatch(page, name, args)

	result := &entity.ActionResult{Payload: payload}
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		result.Error = err.Error()
	}

	// Navigation is detected by URL value comparison, not by the action's
	// own success report: a click can navigate as a side effect. Route
	// changes that keep the URL identical are not detected.
	urlAfter := b.currentURL(page)
	result.DidNavigate = urlBefore != urlAfter && urlAfter != ""

	return result, nil
}

func (b *BrowserAdapter) dispatch(page *rod.Page, name entity.ActionName, args map[string]any) (string, error) {
	switch name {
	case entity.ActionNavigate:
		return b.navigate(page, stringArg(args, "url"))
	case entity.ActionClick:
		return b.click(page, intArg(args, "index", -1))
	case entity.ActionInputText:
		return b.inputText(page, intArg(args, "index", -1), stringArg(args, "text"))
	case entity.ActionExtract:
		return b.extract(page, stringArg(args, "query"))
	case entity.ActionSendKeys:
		return b.sendKeys(page, stringArg(args, "keys"))
	case entity.ActionScroll:
		return b.scroll(page, boolArg(args, "down", true), floatArg(args, "pages", 1.0))
	case entity.ActionScreenshot:
		shot, err := b.screenshot(page)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Screenshot captured (%dx%d %s, %d bytes)", shot.Width, shot.Height, shot.Format, len(shot.Data)), nil
	default:
		return "", fmt.Errorf("unsupported action: %s", name)
	}
}

func (b *BrowserAdapter) currentURL(page *rod.Page) string {
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg accepts float64 because tool-call arguments arrive through JSON.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func boolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func floatArg(args map[string]any, key string, def float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return def
}
