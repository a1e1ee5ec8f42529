package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	raw, exp, err := m.Issue("user-1", RoleCompany, "company-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID())
	require.Equal(t, RoleCompany, claims.Role)
	require.Equal(t, "company-1", claims.CompanyID)
}

func TestParseRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	raw, _, err := m.Issue("user-1", RoleAdmin, "")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewManager("other", time.Hour).Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewManager("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenHash(t *testing.T) {
	raw, hash, err := NewRefreshToken()
	require.NoError(t, err)
	require.Len(t, raw, 64)
	require.Equal(t, hash, HashRefreshToken(raw))
	require.NotEqual(t, raw, hash)
}
