// Package idgen generates conversion identifiers
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Func adapts a plain function to Generator
type Func func() string

// Generate calls f
func (f Func) Generate() string {
	return f()
}

// NewUUID returns a generator of time-ordered UUIDv7 ids, so conversion ids
// sort by creation time in logs. A non-empty prefix is joined with "_".
func NewUUID(prefix string) Generator {
	return Func(func() string {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		return join(prefix, id.String())
	})
}

// NewSequential returns a generator of 1, 2, 3... for tests
func NewSequential(prefix string) Generator {
	var counter atomic.Uint64
	return Func(func() string {
		return join(prefix, strconv.FormatUint(counter.Add(1), 10))
	})
}

func join(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
