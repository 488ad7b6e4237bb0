package ddb

import (
	"fmt"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

const (
	minClassLevel = 1
	maxClassLevel = 20
)

// Validate checks the fields the engines rely on. Unknown stat ids and
// self-contained items are tolerated here and handled by the engines.
func (c *Character) Validate() error {
	vb := errors.NewValidationBuilder()

	for i, class := range c.Classes {
		errors.ValidateRange(fmt.Sprintf("classes[%d].level", i), class.Level, minClassLevel, maxClassLevel, vb)
		errors.ValidateRequired(fmt.Sprintf("classes[%d].definition.name", i), class.Definition.Name, vb)
	}
	if len(c.Classes) > 0 {
		errors.ValidateRange("classes", c.TotalLevel(), minClassLevel, maxClassLevel, vb)
	}

	for i, item := range c.Inventory {
		if item.Quantity < 0 {
			vb.Fieldf(fmt.Sprintf("inventory[%d].quantity", i), "must not be negative")
		}
		if item.Definition.Weight < 0 {
			vb.Fieldf(fmt.Sprintf("inventory[%d].definition.weight", i), "must not be negative")
		}
	}

	for i, feat := range c.Feats {
		errors.ValidateRequired(fmt.Sprintf("feats[%d].definition.name", i), feat.Definition.Name, vb)
	}

	return vb.Build()
}
