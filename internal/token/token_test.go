package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	ts := New([]byte("test-secret"))

	raw, err := ts.Issue(42, "user@example.com", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID())
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, "manager", claims.Role)
}

func TestParseExpired(t *testing.T) {
	ts := &Service{Secret: []byte("test-secret"), TTL: -time.Minute}

	raw, err := ts.Issue(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = New([]byte("test-secret")).Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	raw, err := New([]byte("secret-one")).Issue(1, "user@example.com", "user")
	require.NoError(t, err)

	_, err = New([]byte("secret-two")).Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMalformed(t *testing.T) {
	_, err := New([]byte("test-secret")).Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
