package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlate(t *testing.T) {
	tests := []struct {
		plate string
		valid bool
	}{
		{"ABC123", true},
		{"AB123CD", true},
		{"abc123", false}, // callers must normalize first
		{"AB1234", false},
		{"ABCD123", false},
		{"AB123C", false},
		{"123ABC", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.plate, func(t *testing.T) {
			err := ValidatePlate(tt.plate)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPlate)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC123", NormalizePlate("  abc123 "))
	assert.Equal(t, "AB123CD", NormalizePlate("ab123cd"))
}

func TestVehicleUnitValidate(t *testing.T) {
	valid := VehicleUnit{Plate: "ABC123", BranchID: 1, Year: 2020, State: UnitEnabled}
	assert.NoError(t, valid.Validate())

	t.Run("bad plate", func(t *testing.T) {
		u := valid
		u.Plate = "NOPE"
		assert.Error(t, u.Validate())
	})

	t.Run("missing branch", func(t *testing.T) {
		u := valid
		u.BranchID = 0
		assert.ErrorIs(t, u.Validate(), ErrInvalidUnit)
	})

	t.Run("ancient year", func(t *testing.T) {
		u := valid
		u.Year = 1900
		assert.ErrorIs(t, u.Validate(), ErrInvalidUnit)
	})

	t.Run("unknown state", func(t *testing.T) {
		u := valid
		u.State = UnitState("broken")
		assert.ErrorIs(t, u.Validate(), ErrInvalidUnit)
	})
}
