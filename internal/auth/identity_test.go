package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseClientToken(t *testing.T) {
	svc := NewIdentityService("test-secret")
	cid := NewClientID()

	signed, err := svc.IssueClientToken(cid)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed, err := svc.ParseClientID(signed)
	require.NoError(t, err)
	assert.Equal(t, cid, parsed)
}

func TestParseClientID(t *testing.T) {
	svc := NewIdentityService("test-secret")

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ParseClientID("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewIdentityService("other-secret")
		signed, err := other.IssueClientToken(NewClientID())
		require.NoError(t, err)

		_, err = svc.ParseClientID(signed)
		assert.Error(t, err)
	})
}

func TestNewClientID(t *testing.T) {
	assert.NotEqual(t, NewClientID(), NewClientID())
}
