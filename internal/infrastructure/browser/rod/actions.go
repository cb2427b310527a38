package rod

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const maxExtractLen = 10000

func (b *BrowserAdapter) navigate(page *rod.Page, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("navigate requires a non-empty 'url' argument")
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page did not finish loading: %w", err)
	}
	page.WaitIdle(5 * time.Second)

	return fmt.Sprintf("Navigated to %s", url), nil
}

func (b *BrowserAdapter) click(page *rod.Page, index int) (string, error) {
	el, err := b.cachedElement(index)
	if err != nil {
		return "", err
	}

	if err := el.ScrollIntoView(); err != nil {
		return "", fmt.Errorf("element %d could not be scrolled into view: %w", index, err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		// Mouse click can miss elements under overlays; a JS click still
		// reaches them.
		if _, jsErr := el.Eval(`() => this.click()`); jsErr != nil {
			return "", fmt.Errorf("element %d not clickable: %w", index, err)
		}
	}
	page.WaitIdle(2 * time.Second)

	return fmt.Sprintf("Clicked element %d", index), nil
}

func (b *BrowserAdapter) inputText(page *rod.Page, index int, text string) (string, error) {
	el, err := b.cachedElement(index)
	if err != nil {
		return "", err
	}

	if err := el.Focus(); err != nil {
		return "", fmt.Errorf("element %d cannot be focused: %w", index, err)
	}
	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(text); err != nil {
		return "", fmt.Errorf("typing into element %d failed: %w", index, err)
	}

	return fmt.Sprintf("Typed %q into element %d", text, index), nil
}

func (b *BrowserAdapter) extract(page *rod.Page, query string) (string, error) {
	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}

	text := Textify(html)
	if len(text) > maxExtractLen {
		text = text[:maxExtractLen] + "\n...[truncated]"
	}

	if query != "" {
		return fmt.Sprintf("Page text (for query %q):\n%s", query, text), nil
	}
	return "Page text:\n" + text, nil
}

func (b *BrowserAdapter) sendKeys(page *rod.Page, keys string) (string, error) {
	if keys == "" {
		return "", fmt.Errorf("send_keys requires a non-empty 'keys' argument")
	}

	mods, key, err := parseKeyChord(keys)
	if err != nil {
		return "", err
	}

	kb := page.Keyboard
	for _, mod := range mods {
		if err := kb.Press(mod); err != nil {
			return "", fmt.Errorf("pressing modifier failed: %w", err)
		}
	}
	if err := kb.Type(key); err != nil {
		return "", fmt.Errorf("sending %q failed: %w", keys, err)
	}
	for i := len(mods) - 1; i >= 0; i-- {
		_ = kb.Release(mods[i])
	}
	page.WaitIdle(1 * time.Second)

	return fmt.Sprintf("Sent keys: %s", keys), nil
}

func (b *BrowserAdapter) scroll(page *rod.Page, down bool, pages float64) (string, error) {
	if pages <= 0 {
		pages = 1.0
	}
	factor := pages
	if !down {
		factor = -pages
	}

	_, err := page.Eval(`(factor) => window.scrollBy(0, window.innerHeight * factor)`, factor)
	if err != nil {
		return "", fmt.Errorf("scroll failed: %w", err)
	}
	page.WaitIdle(800 * time.Millisecond)

	direction := "down"
	if !down {
		direction = "up"
	}
	return fmt.Sprintf("Scrolled %s %.1f pages", direction, pages), nil
}

func (b *BrowserAdapter) cachedElement(index int) (*rod.Element, error) {
	if index < 0 {
		return nil, fmt.Errorf("missing or invalid 'index' argument")
	}
	el, ok := b.elementCache[index]
	if !ok {
		return nil, fmt.Errorf("element index %d not found in the last observation (%d elements); observe again", index, len(b.elementCache))
	}
	return el, nil
}
