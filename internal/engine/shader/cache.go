package shader

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
)

// ErrNoBuilder is returned by a Cache without a Builder.
var ErrNoBuilder = errors.New("shader: no program builder")

// Builder assembles a program for a key. Source generation lives behind this boundary.
type Builder interface {
	Build(key Key) (*Program, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(Key) (*Program, error)

// Build calls f(key).
func (f BuilderFunc) Build(key Key) (*Program, error) {
	return f(key)
}

// Cache memoizes built programs by key so identical configurations are built once.
type Cache struct {
	builder  Builder
	programs map[Key]*Program
	misses   int
}

// NewCache creates a cache over the given builder.
func NewCache(b Builder) *Cache {
	return &Cache{builder: b, programs: make(map[Key]*Program)}
}

// Get returns the program for key, building it on first use.
func (c *Cache) Get(key Key) (*Program, error) {
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	if c.builder == nil {
		return nil, ErrNoBuilder
	}

	c.misses++
	p, err := c.builder.Build(key)
	if err != nil {
		return nil, fmt.Errorf("building program %s: %w", key, err)
	}
	c.programs[key] = p

	logger.Debug("shader program built",
		zap.Stringer("key", key),
		zap.Uint32("handle", p.Handle),
		zap.Int("params", len(p.params)),
	)
	return p, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return len(c.programs)
}

// Builds returns how many times the builder was invoked.
func (c *Cache) Builds() int {
	return c.misses
}
