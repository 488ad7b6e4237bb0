package external

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KirkDiggler/ddb-converter/internal/errors"
)

// mockEquipmentSource is a mock of the dnd5e-api equipment lookup
type mockEquipmentSource struct {
	mock.Mock
}

func (m *mockEquipmentSource) GetEquipment(key string) (dnd5e.EquipmentInterface, error) {
	args := m.Called(key)
	return args.Get(0).(dnd5e.EquipmentInterface), args.Error(1)
}

func TestSlug(t *testing.T) {
	testCases := map[string]string{
		"Longsword":        "longsword",
		"Crossbow, Light":  "crossbow-light",
		"  Hand Crossbow ": "hand-crossbow",
		"Net (Special)":    "net-special",
		"":                 "",
	}
	for in, want := range testCases {
		assert.Equal(t, want, Slug(in), "input %q", in)
	}
}

func TestGetWeapon(t *testing.T) {
	t.Run("successful weapon retrieval", func(t *testing.T) {
		source := new(mockEquipmentSource)
		c := newClient(source)

		weapon := &entities.Weapon{
			Key:            "longsword",
			Name:           "Longsword",
			WeaponCategory: "Martial",
			WeaponRange:    "Melee",
			Weight:         3.0,
			Damage:         &entities.Damage{DamageDice: "1d8", DamageType: &entities.ReferenceItem{Name: "Slashing"}},
			Properties:     []*entities.ReferenceItem{{Name: "Versatile"}},
		}
		source.On("GetEquipment", "longsword").Return(weapon, nil)

		result, err := c.GetWeapon(context.Background(), "Longsword")

		require.NoError(t, err)
		assert.Equal(t, "longsword", result.ID)
		assert.Equal(t, "Longsword", result.Name)
		assert.Equal(t, "Martial", result.Category)
		assert.Equal(t, "1d8", result.DamageDice)
		assert.Equal(t, "slashing", result.DamageType)
		assert.Equal(t, []string{"Versatile"}, result.Properties)
		assert.Equal(t, 3.0, result.Weight)
		source.AssertExpectations(t)
	})

	t.Run("non-weapon equipment is not found", func(t *testing.T) {
		source := new(mockEquipmentSource)
		c := newClient(source)

		source.On("GetEquipment", "rope-hempen-50-feet").Return(&entities.Equipment{Key: "rope-hempen-50-feet"}, nil)

		result, err := c.GetWeapon(context.Background(), "Rope, Hempen (50 feet)")

		assert.Nil(t, result)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("misses are remembered", func(t *testing.T) {
		source := new(mockEquipmentSource)
		c := newClient(source)

		source.On("GetEquipment", "homebrew-blade").
			Return((*entities.Equipment)(nil), errors.New("not found")).Once()

		_, err := c.GetWeapon(context.Background(), "Homebrew Blade")
		assert.True(t, apperrors.IsNotFound(err))

		_, err = c.GetWeapon(context.Background(), "Homebrew Blade")
		assert.True(t, apperrors.IsNotFound(err))

		source.AssertNumberOfCalls(t, "GetEquipment", 1)
	})

	t.Run("empty name", func(t *testing.T) {
		c := newClient(new(mockEquipmentSource))

		_, err := c.GetWeapon(context.Background(), "  ")
		assert.True(t, apperrors.IsInvalidArgument(err))
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://www.dnd5eapi.co/api/2014/", cfg.BaseURL)
	assert.NotZero(t, cfg.HTTPTimeout)
	assert.NotZero(t, cfg.CacheTTL)
}
