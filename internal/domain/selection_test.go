package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
)

func TestNewSelection_OneHunterNothingElse(t *testing.T) {
	s := domain.NewSelection()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, domain.PeopleCount{Hunters: 1, NonHunters: 0}, s.People)
	assert.Empty(t, s.ActiveExtras())
}

func TestSelection_AddHunt_IncrementsExistingLine(t *testing.T) {
	s := domain.NewSelection()

	s.AddHunt("red-deer-free-range")
	s.AddHunt("tahr-bull")
	s.AddHunt("red-deer-free-range")

	require.Len(t, s.Lines, 2)
	assert.Equal(t, domain.SelectionLine{OfferingID: "red-deer-free-range", Quantity: 2}, s.Lines[0])
	assert.Equal(t, domain.SelectionLine{OfferingID: "tahr-bull", Quantity: 1}, s.Lines[1])
}

func TestSelection_SetQuantity_ZeroRemovesLine(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")
	s.AddHunt("chamois-buck")

	s.SetQuantity("tahr-bull", 0)

	require.Len(t, s.Lines, 1)
	assert.Equal(t, "chamois-buck", s.Lines[0].OfferingID)
}

func TestSelection_SetQuantity_UnknownIDIgnored(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")

	s.SetQuantity("nope", 4)

	assert.Equal(t, []domain.SelectionLine{{OfferingID: "tahr-bull", Quantity: 1}}, s.Lines)
}

func TestSelection_Clamps(t *testing.T) {
	s := domain.NewSelection()

	s.SetExtraDays(-3)
	s.SetHunters(0)
	s.SetNonHunters(-1)

	assert.Equal(t, 0, s.ExtraDays)
	assert.Equal(t, 1, s.People.Hunters)
	assert.Equal(t, 0, s.People.NonHunters)
}

// ---- extras ----------------------------------------------------------------

func TestSelection_SetExtra_RequiresSelectedHunt(t *testing.T) {
	s := domain.NewSelection()

	err := s.SetExtra("tahr-bull", "taxidermy", 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, s.Extras)
}

func TestSelection_SetExtra_UpdateAndRemove(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")

	require.NoError(t, s.SetExtra("tahr-bull", "taxidermy", 1))
	require.NoError(t, s.SetExtra("tahr-bull", "taxidermy", 3))
	require.Len(t, s.Extras, 1)
	assert.Equal(t, 3, s.Extras[0].Quantity)

	require.NoError(t, s.SetExtra("tahr-bull", "taxidermy", 0))
	assert.Empty(t, s.Extras)
}

func TestSelection_RemovedHuntOrphansItsExtras(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")
	s.AddHunt("chamois-buck")
	require.NoError(t, s.SetExtra("tahr-bull", "taxidermy", 1))
	require.NoError(t, s.SetExtra("chamois-buck", "rifle-hire", 1))

	s.RemoveHunt("tahr-bull")

	assert.Equal(t, []domain.ExtraSelection{
		{OfferingID: "chamois-buck", ExtraID: "rifle-hire", Quantity: 1},
	}, s.ActiveExtras())
}

func TestSelection_ReAddedHuntDoesNotResurrectExtras(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")
	require.NoError(t, s.SetExtra("tahr-bull", "taxidermy", 2))

	s.SetQuantity("tahr-bull", 0)
	s.AddHunt("tahr-bull")

	assert.Empty(t, s.ActiveExtras())
}

func TestSelection_CloneDoesNotAlias(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")

	c := s.Clone()
	c.AddHunt("tahr-bull")

	assert.Equal(t, 1, s.Lines[0].Quantity)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestSelection_Reset(t *testing.T) {
	s := domain.NewSelection()
	s.AddHunt("tahr-bull")
	s.SetExtraDays(2)
	s.SetHunters(3)

	s.Reset()

	assert.Equal(t, domain.NewSelection(), s)
}
