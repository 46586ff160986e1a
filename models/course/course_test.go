package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFree(t *testing.T) {
	assert.True(t, (&Course{}).IsFree())
	assert.False(t, (&Course{Price: 9.99}).IsFree())
	assert.False(t, (&Course{EscudosPrice: 10}).IsFree())
	assert.False(t, (&Course{Price: 9.99, EscudosPrice: 10}).IsFree())
}

func TestVisibleToPublishedCourseIsPublic(t *testing.T) {
	c := Course{InstructorID: 3, IsPublished: true}

	assert.True(t, c.VisibleTo(0, ""))          // anonymous
	assert.True(t, c.VisibleTo(7, "STUDENT"))   // unrelated user
	assert.True(t, c.VisibleTo(3, "INSTRUCTOR")) // owner
}

func TestVisibleToUnpublishedCourseIsHidden(t *testing.T) {
	c := Course{InstructorID: 3, IsPublished: false}

	assert.False(t, c.VisibleTo(0, ""))
	assert.False(t, c.VisibleTo(7, "STUDENT"))
	assert.False(t, c.VisibleTo(7, "INSTRUCTOR")) // instructor, but not the owner
}

func TestVisibleToUnpublishedCourseOwnerAndAdmin(t *testing.T) {
	c := Course{InstructorID: 3, IsPublished: false}

	assert.True(t, c.VisibleTo(3, "INSTRUCTOR"))
	assert.True(t, c.VisibleTo(1, "ADMIN"))
}
