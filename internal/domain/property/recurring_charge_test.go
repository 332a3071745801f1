package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnit(t *testing.T, propertyID uuid.UUID, unitType UnitType) *Unit {
	t.Helper()
	u, err := NewUnit(propertyID, "A-1", unitType, valueobject.NewMoneyKES(decimal.NewFromInt(15000)))
	require.NoError(t, err)
	return u
}

func TestNewRecurringCharge(t *testing.T) {
	propertyID := uuid.New()
	amount := valueobject.NewMoneyKES(decimal.NewFromInt(500))

	tests := []struct {
		name       string
		chargeName string
		propertyID uuid.UUID
		mode       ApplicabilityMode
		wantErr    bool
	}{
		{"valid", "Security", propertyID, ApplicabilityAllUnits, false},
		{"empty name", "", propertyID, ApplicabilityAllUnits, true},
		{"nil property", "Security", uuid.Nil, ApplicabilityAllUnits, true},
		{"unknown mode", "Security", propertyID, ApplicabilityMode("EVERYONE"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewRecurringCharge(tt.propertyID, tt.chargeName, amount, tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, c.Active)
			assert.Equal(t, tt.mode, c.Mode)
		})
	}
}

func TestRecurringCharge_AppliesTo_AllUnits(t *testing.T) {
	propertyID := uuid.New()
	unit := newTestUnit(t, propertyID, UnitTypeOneBedroom)

	charge, err := NewRecurringCharge(propertyID, "Security", valueobject.NewMoneyKES(decimal.NewFromInt(500)), ApplicabilityAllUnits)
	require.NoError(t, err)

	assert.True(t, charge.AppliesTo(unit))

	other := newTestUnit(t, uuid.New(), UnitTypeOneBedroom)
	assert.False(t, charge.AppliesTo(other), "charge must not cross properties")
}

func TestRecurringCharge_AppliesTo_SpecificUnits(t *testing.T) {
	propertyID := uuid.New()
	listed := newTestUnit(t, propertyID, UnitTypeOneBedroom)
	unlisted := newTestUnit(t, propertyID, UnitTypeOneBedroom)

	charge, err := NewRecurringCharge(propertyID, "Parking", valueobject.NewMoneyKES(decimal.NewFromInt(1000)), ApplicabilitySpecificUnits)
	require.NoError(t, err)
	charge.UnitIDs = []uuid.UUID{listed.ID}

	assert.True(t, charge.AppliesTo(listed))
	assert.False(t, charge.AppliesTo(unlisted))
}

func TestRecurringCharge_AppliesTo_UnitTypes(t *testing.T) {
	propertyID := uuid.New()
	shop := newTestUnit(t, propertyID, UnitTypeShop)
	bedsitter := newTestUnit(t, propertyID, UnitTypeBedsitter)

	charge, err := NewRecurringCharge(propertyID, "Signage levy", valueobject.NewMoneyKES(decimal.NewFromInt(300)), ApplicabilityUnitTypes)
	require.NoError(t, err)
	charge.UnitTypes = []UnitType{UnitTypeShop}

	assert.True(t, charge.AppliesTo(shop))
	assert.False(t, charge.AppliesTo(bedsitter))
}

func TestRecurringCharge_AppliesTo_UnknownModeMatchesNothing(t *testing.T) {
	propertyID := uuid.New()
	unit := newTestUnit(t, propertyID, UnitTypeOneBedroom)

	charge, err := NewRecurringCharge(propertyID, "Security", valueobject.NewMoneyKES(decimal.NewFromInt(500)), ApplicabilityAllUnits)
	require.NoError(t, err)
	charge.Mode = ApplicabilityMode("SOMETHING_NEW")

	assert.False(t, charge.AppliesTo(unit))
}

func TestRecurringCharge_AppliesTo_Inactive(t *testing.T) {
	propertyID := uuid.New()
	unit := newTestUnit(t, propertyID, UnitTypeOneBedroom)

	charge, err := NewRecurringCharge(propertyID, "Security", valueobject.NewMoneyKES(decimal.NewFromInt(500)), ApplicabilityAllUnits)
	require.NoError(t, err)
	charge.Deactivate()

	assert.False(t, charge.AppliesTo(unit))
}
