package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotificationRolesRoundTrip(t *testing.T) {
	n := PopupNotification{}
	err := n.SetRoles([]string{"STUDENT", "INSTRUCTOR"})
	assert.NoError(t, err)

	roles, err := n.Roles()
	assert.NoError(t, err)
	assert.Equal(t, []string{"STUDENT", "INSTRUCTOR"}, roles)
}

func TestNotificationEmptyTargetsEveryone(t *testing.T) {
	n := PopupNotification{
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
	}

	for _, role := range []string{"STUDENT", "INSTRUCTOR", "ADMIN"} {
		targeted, err := n.Targets(role)
		assert.NoError(t, err)
		assert.True(t, targeted, "empty target list should include %s", role)
	}
}

func TestNotificationTargetsOnlyListedRoles(t *testing.T) {
	n := PopupNotification{}
	assert.NoError(t, n.SetRoles([]string{"STUDENT"}))

	targeted, err := n.Targets("STUDENT")
	assert.NoError(t, err)
	assert.True(t, targeted)

	targeted, err = n.Targets("INSTRUCTOR")
	assert.NoError(t, err)
	assert.False(t, targeted)
}

func TestNotificationMalformedRolesFailLoudly(t *testing.T) {
	n := PopupNotification{TargetRoles: []byte(`{"not":"a list"}`)}

	_, err := n.Roles()
	assert.Error(t, err)

	_, err = n.Targets("STUDENT")
	assert.Error(t, err)
}

func TestInstructorProfileJSONHelpers(t *testing.T) {
	p := InstructorProfile{}
	assert.NoError(t, p.SetExpertise([]string{"pentesting", "forensics"}))
	assert.NoError(t, p.SetLinks(map[string]string{"github": "https://github.com/x"}))

	tags, err := p.ExpertiseList()
	assert.NoError(t, err)
	assert.Equal(t, []string{"pentesting", "forensics"}, tags)

	links, err := p.Links()
	assert.NoError(t, err)
	assert.Equal(t, "https://github.com/x", links["github"])
}

func TestInstructorProfileMalformedJSONFailsLoudly(t *testing.T) {
	p := InstructorProfile{Expertise: []byte(`42`), SocialLinks: []byte(`[1,2]`)}

	_, err := p.ExpertiseList()
	assert.Error(t, err)

	_, err = p.Links()
	assert.Error(t, err)
}
