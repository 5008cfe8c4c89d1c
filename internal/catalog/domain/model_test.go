package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "baby-shoot", Slugify("Baby Shoot"))
	assert.Equal(t, "pre-wedding-shoot", Slugify("  Pre-Wedding   Shoot "))
	assert.Equal(t, "", Slugify("   "))
}

func TestService_Active(t *testing.T) {
	assert.True(t, Service{}.Active(), "missing flag counts as active")
	assert.True(t, Service{IsActive: Bool(true)}.Active())
	assert.False(t, Service{IsActive: Bool(false)}.Active())
}

func TestServicePatch_Fields(t *testing.T) {
	name := "Newborn Shoot"
	p := ServicePatch{Name: &name, IsActive: Bool(false)}

	assert.Equal(t, map[string]any{"name": "Newborn Shoot", "isActive": false}, p.Fields())
	assert.Empty(t, ServicePatch{}.Fields())
}

func TestDefaultServices(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	services := DefaultServices(now)

	assert.Len(t, services, 5)
	ids := make(map[string]bool)
	for _, s := range services {
		assert.True(t, s.Active())
		assert.Equal(t, now, s.CreatedAt)
		assert.NotEmpty(t, s.SubServices)
		ids[s.ID] = true
	}
	assert.Len(t, ids, 5)

	film := services[4]
	sub, ok := film.SubService("film-editing")
	assert.True(t, ok)
	assert.Equal(t, "hours", sub.Noun())
	assert.Nil(t, sub.OriginalPrice)
	assert.Equal(t, float64(9000), film.TotalPrice())
}

func TestCheckSubServiceIDs(t *testing.T) {
	assert.NoError(t, CheckSubServiceIDs([]SubService{{ID: "a"}, {ID: "b"}, {}, {}}))
	assert.ErrorIs(t, CheckSubServiceIDs([]SubService{{ID: "x"}, {ID: "y"}, {ID: "x"}}), ErrDuplicateSubService)
}
