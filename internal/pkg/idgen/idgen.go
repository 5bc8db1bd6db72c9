// Package idgen provides ID generation for agents, rolls and chat messages
package idgen

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/deltagreen-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Common prefixes
const (
	PrefixAgent   = "agent"
	PrefixRoll    = "roll"
	PrefixMessage = "msg"
)

// PrefixedGenerator generates IDs of the form prefix_<uuid without dashes>
type PrefixedGenerator struct {
	prefix string
}

// NewPrefixed creates a new generator with the given prefix
func NewPrefixed(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: prefix}
}

// Generate creates a new ID
func (g *PrefixedGenerator) Generate() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if g.prefix == "" {
		return id
	}
	return g.prefix + "_" + id
}

// SequentialGenerator generates predictable IDs for tests
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates the next sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// Reset starts the sequence over
func (g *SequentialGenerator) Reset() {
	atomic.StoreUint64(&g.counter, 0)
}
