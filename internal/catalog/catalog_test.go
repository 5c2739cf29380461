package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdg-garage/mission-registration/internal/catalog"
	"github.com/gdg-garage/mission-registration/internal/models"
)

func TestFind(t *testing.T) {
	m, ok := catalog.Find(2)
	require.True(t, ok)
	assert.Equal(t, models.WeekLong, m.EffectiveKind())
	assert.False(t, m.KindConflict())

	_, ok = catalog.Find(99)
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := catalog.All()
	require.NotEmpty(t, all)
	all[0].Title = "changed"

	m, _ := catalog.Find(all[0].ID)
	assert.NotEqual(t, "changed", m.Title)
}

func TestAll_KindsMatchDates(t *testing.T) {
	for _, m := range catalog.All() {
		assert.False(t, m.KindConflict(), "mission %d", m.ID)
	}
}
