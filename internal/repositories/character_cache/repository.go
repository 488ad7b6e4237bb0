// Package charactercache stores raw D&D Beyond character documents so
// repeated conversions skip the upstream fetch
package charactercache

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=charactercachemock github.com/KirkDiggler/ddb-converter/internal/repositories/character_cache Repository

// Entry is one cached character document
type Entry struct {
	// D&D Beyond character id
	CharacterID string

	// Raw character JSON exactly as fetched
	Data []byte

	// When the document was fetched from D&D Beyond
	FetchedAt time.Time

	// When the entry expires
	ExpiresAt time.Time
}

// PutInput contains parameters for caching a character
type PutInput struct {
	CharacterID string
	Data        []byte
	TTL         time.Duration // Defaults to the repository TTL
}

// PutOutput contains the stored entry
type PutOutput struct {
	Entry *Entry
}

// GetInput contains parameters for reading a cached character
type GetInput struct {
	CharacterID string
}

// GetOutput contains the cached entry
type GetOutput struct {
	Entry *Entry
}

// DeleteInput contains parameters for evicting a character
type DeleteInput struct {
	CharacterID string
}

// DeleteOutput reports whether anything was evicted
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for character document caching
type Repository interface {
	// Put stores the document with a TTL
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Get returns the cached document or a NotFound error
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete evicts the document
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
