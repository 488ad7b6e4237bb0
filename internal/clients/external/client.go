// Package external looks up reference data from the D&D 5e SRD API
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/ddb-converter/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

// slugPattern matches characters that should be replaced in slugs
var slugPattern = regexp.MustCompile(`[^a-z0-9-]+`)

var repeatedHyphens = regexp.MustCompile(`-+`)

// Slug converts an item name into an SRD index, e.g. "Crossbow, Light"
// becomes "crossbow-light".
func Slug(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Client defines the interface for SRD lookups
type Client interface {
	// GetWeapon fetches weapon statistics by item name. Returns a NotFound
	// error when the SRD has no weapon with that name.
	GetWeapon(ctx context.Context, name string) (*WeaponData, error)
}

// WeaponData is the subset of SRD weapon data used to fill gaps in a
// character's inventory.
type WeaponData struct {
	ID         string
	Name       string
	Category   string
	Range      string
	DamageDice string
	DamageType string
	Properties []string
	Weight     float64
}

// equipmentSource is the part of the dnd5e-api client used here.
type equipmentSource interface {
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
}

type client struct {
	source equipmentSource

	mu     sync.Mutex
	misses map[string]bool
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 10 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return newClient(dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)), nil
}

func newClient(source equipmentSource) *client {
	return &client{
		source: source,
		misses: make(map[string]bool),
	}
}

func (c *client) GetWeapon(ctx context.Context, name string) (*WeaponData, error) {
	key := Slug(name)
	if key == "" {
		return nil, errors.InvalidArgument("weapon name is required")
	}

	if c.missed(key) {
		return nil, errors.NotFoundf("weapon %s not in SRD", key)
	}

	slog.DebugContext(ctx, "Looking up SRD weapon", "name", name, "key", key)
	equipment, err := c.source.GetEquipment(key)
	if err != nil {
		c.remember(key)
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, "failed to get SRD equipment "+key)
	}

	weapon, ok := equipment.(*entities.Weapon)
	if !ok || weapon == nil {
		c.remember(key)
		return nil, errors.NotFoundf("SRD equipment %s is not a weapon", key)
	}

	return convertWeapon(weapon), nil
}

func (c *client) missed(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses[key]
}

func (c *client) remember(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses[key] = true
}

func convertWeapon(w *entities.Weapon) *WeaponData {
	data := &WeaponData{
		ID:       w.Key,
		Name:     w.Name,
		Category: w.WeaponCategory,
		Range:    w.WeaponRange,
		Weight:   float64(w.Weight),
	}
	if w.Damage != nil {
		data.DamageDice = w.Damage.DamageDice
		if w.Damage.DamageType != nil {
			data.DamageType = strings.ToLower(w.Damage.DamageType.Name)
		}
	}
	for _, prop := range w.Properties {
		if prop != nil {
			data.Properties = append(data.Properties, prop.Name)
		}
	}
	return data
}
