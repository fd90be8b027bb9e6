package domain

import (
	"errors"
	"fmt"
	"strings"
)

// MenuItem represents a single orderable item of the counter
type MenuItem struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Price      int      `json:"price" yaml:"price"`
	Image      string   `json:"image" yaml:"image"`
	Categories []string `json:"categories" yaml:"categories"`
}

// Validate applies catalog rules to a single item
func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required for %q", ErrInvalidItem, m.ID)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: price must not be negative for %q", ErrInvalidItem, m.ID)
	}
	return nil
}

// HasCategory reports whether the item is tagged with the given category
func (m MenuItem) HasCategory(category string) bool {
	for _, c := range m.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Catalog is the ordered, immutable list of menu items.
type Catalog struct {
	items []MenuItem
	index map[string]int
}

// NewCatalog validates items and keeps their declaration order.
func NewCatalog(items []MenuItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]MenuItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.index[item.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}

		item.Categories = append([]string(nil), item.Categories...)
		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}

	return c, nil
}

// Items returns a copy of the catalog in declaration order
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup finds an item by id
func (c *Catalog) Lookup(id string) (MenuItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return MenuItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// DefaultCounts returns the all-zero count map keyed by every catalog id
func (c *Catalog) DefaultCounts() map[string]int {
	counts := make(map[string]int, len(c.items))
	for _, item := range c.items {
		counts[item.ID] = 0
	}
	return counts
}

var (
	ErrInvalidItem   = errors.New("invalid menu item")
	ErrDuplicateItem = errors.New("duplicate menu item id")
	ErrUnknownItem   = errors.New("unknown menu item")
)
