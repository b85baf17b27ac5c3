package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/utils"
)

func TestRequireAuthenticated(t *testing.T) {
	g := Guard{TenantID: "acct-1"}
	require.NoError(t, g.RequireAuthenticated())

	empty := Guard{}
	err := empty.RequireAuthenticated()
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeUnauthenticated, utils.CodeOf(err))
	require.Equal(t, "Authentication required: JWT token must be provided", err.Error())
}

func TestRequireMatch(t *testing.T) {
	g := Guard{TenantID: "acct-1"}

	require.NoError(t, g.RequireMatch("acct-1", DeniedAccountMismatch))

	err := g.RequireMatch("acct-2", DeniedAccountMismatch)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeForbidden, utils.CodeOf(err))
	require.Equal(t, DeniedAccountMismatch, err.Error())
}

func TestRequireMatchUnauthenticatedBeforeComparison(t *testing.T) {
	empty := Guard{}
	err := empty.RequireMatch("acct-1", DeniedAccountMismatch)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeUnauthenticated, utils.CodeOf(err))
}

func TestRequireOwner(t *testing.T) {
	g := Guard{TenantID: "acct-1"}
	require.NoError(t, g.RequireOwner("acct-1", "Unauthorized: You can only access your own account"))

	err := g.RequireOwner("acct-2", "Unauthorized: You can only access your own account")
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeForbidden, utils.CodeOf(err))
	require.Equal(t, "Unauthorized: You can only access your own account", err.Error())
}

// A caller with no identity gets the same denial as a mismatched one.
func TestRequireOwnerMissingIdentity(t *testing.T) {
	empty := Guard{}
	err := empty.RequireOwner("acct-1", "Unauthorized: You can only access your own account")
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeForbidden, utils.CodeOf(err))
}
