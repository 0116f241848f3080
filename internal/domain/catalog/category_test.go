package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates root category with derived slug", func(t *testing.T) {
		c, err := NewCategory("Kitchen & Dining", "", nil)
		require.NoError(t, err)

		assert.True(t, c.IsRoot())
		assert.Equal(t, "Kitchen & Dining", c.Name)
		assert.Equal(t, Slugify("Kitchen & Dining"), c.Slug)
		assert.NotEmpty(t, c.Slug)
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		c, err := NewCategory("Mugs", "Mugs", nil)
		require.NoError(t, err)
		assert.Equal(t, "Mugs", c.Slug)
	})

	t.Run("creates child category", func(t *testing.T) {
		parent, err := NewCategory("Kitchen", "", nil)
		require.NoError(t, err)

		child, err := NewCategory("Mugs", "", &parent.ID)
		require.NoError(t, err)

		assert.False(t, child.IsRoot())
		assert.True(t, child.IsChildOf(parent))
		assert.Equal(t, "Kitchen > Mugs", child.DisplayName(parent))
		assert.Equal(t, "Kitchen", parent.DisplayName(nil))
	})

	t.Run("records CategoryCreated event", func(t *testing.T) {
		c, err := NewCategory("Kitchen", "", nil)
		require.NoError(t, err)

		events := c.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
		assert.Empty(t, c.PendingEvents())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "kitchen", nil)
		assertDomainCode(t, err, CodeInvalidName)
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("n", MaxCategoryNameLength+1), "", nil)
		assertDomainCode(t, err, CodeInvalidName)
	})

	t.Run("fails when no slug can be derived", func(t *testing.T) {
		_, err := NewCategory("???", "", nil)
		assertDomainCode(t, err, CodeInvalidSlug)
	})

	t.Run("fails with malformed slug", func(t *testing.T) {
		_, err := NewCategory("Kitchen", "kit chen", nil)
		assertDomainCode(t, err, CodeInvalidSlug)
	})
}

func TestCategory_MoveTo(t *testing.T) {
	c, err := NewCategory("Mugs", "", nil)
	require.NoError(t, err)

	parentID := uuid.New()
	c.MoveTo(&parentID)
	assert.Equal(t, &parentID, c.ParentID)

	c.MoveTo(nil)
	assert.True(t, c.IsRoot())
}
