package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, role := range AllRoles {
		parsed, err := ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := ParseRole("Astronaut")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)

	// Role titles are exact, not case folded
	_, err = ParseRole("financial analyst")
	assert.Error(t, err)
}

func TestRoleDescriptionsExist(t *testing.T) {
	assert.Len(t, AllRoles, 4)
	for _, role := range AllRoles {
		assert.NotEmpty(t, role.Description(), "role %s needs a description", role)
	}
}
