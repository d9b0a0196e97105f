package catalog

import (
	"fmt"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Domains is an ordered registry of test domains.
type Domains struct {
	order  []domain.Domain
	byName map[string]int
}

// NewDomains creates an empty domain registry.
func NewDomains() *Domains {
	return &Domains{byName: make(map[string]int)}
}

// Register adds a test domain. Names must be unique.
func (c *Domains) Register(d domain.Domain) error {
	if d.Name == "" || d.Path == "" {
		return fmt.Errorf("%w: name and path are required (name=%q path=%q)", domain.ErrInvalidDomain, d.Name, d.Path)
	}
	if _, exists := c.byName[d.Name]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateDomain, d.Name)
	}
	c.byName[d.Name] = len(c.order)
	c.order = append(c.order, d)
	return nil
}

// All returns the registered domains in registration order.
func (c *Domains) All() []domain.Domain {
	out := make([]domain.Domain, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the domain registered under name.
func (c *Domains) Lookup(name string) (domain.Domain, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Domain{}, false
	}
	return c.order[i], true
}

// Select resolves names into domains, preserving the order of names. An
// empty list selects every registered domain.
func (c *Domains) Select(names []string) ([]domain.Domain, error) {
	if len(names) == 0 {
		return c.All(), nil
	}
	out := make([]domain.Domain, 0, len(names))
	for _, n := range names {
		d, ok := c.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, n)
		}
		out = append(out, d)
	}
	return out, nil
}

// Len returns the number of registered domains.
func (c *Domains) Len() int { return len(c.order) }
