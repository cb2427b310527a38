package rod

import (
	"strings"

	"github.com/go-rod/rod"

	"web-agent/internal/domain/entity"
)

// maxElements caps the element list so huge pages do not flood the oracle's
// context.
const maxElements = 100

// interactiveSelector matches the tags and roles the agent can act on.
const interactiveSelector = "a, button, input, textarea, select, [role='button'], [role='link'], [onclick]"

// extractElements rebuilds the indexed element list and the index -> handle
// cache. Indexes are assigned in DOM order over visible elements only.
func (b *BrowserAdapter) extractElements(page *rod.Page) ([]entity.ElementDescriptor, error) {
	found, err := page.Timeout(b.timeout).Elements(interactiveSelector)
	if err != nil {
		return nil, err
	}

	cache := make(map[int]*rod.Element)
	descriptors := make([]entity.ElementDescriptor, 0, len(found))

	for _, el := range found {
		if len(descriptors) >= maxElements {
			break
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}

		index := len(descriptors)
		descriptors = append(descriptors, describeElement(el, index))
		cache[index] = el
	}

	b.elementCache = cache
	return descriptors, nil
}

func describeElement(el *rod.Element, index int) entity.ElementDescriptor {
	desc := entity.ElementDescriptor{Index: index}

	if shape, err := el.Describe(0, false); err == nil {
		desc.Tag = strings.ToLower(shape.LocalName)
	}

	text, _ := el.Text()
	desc.Text = collapseWhitespace(text, 120)

	if aria, _ := el.Attribute("aria-label"); aria != nil {
		desc.AriaLabel = *aria
	}
	if role, _ := el.Attribute("role"); role != nil {
		desc.Role = *role
	}
	if desc.Tag == "a" {
		if href, _ := el.Attribute("href"); href != nil {
			desc.Href = collapseWhitespace(*href, 120)
		}
	}

	return desc
}

func collapseWhitespace(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
