package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

func TestIssueParseRoundTrip(t *testing.T) {
	m := New("test-secret", "eapp", time.Hour)
	ctx := context.Background()

	raw, issued, err := m.Issue(ctx, 42, "nguyenvana", domain.RoleCitizen)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	require.NotEmpty(t, issued.JTI)

	parsed, err := m.Parse(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, int64(42), parsed.SubjectID)
	require.Equal(t, "nguyenvana", parsed.Username)
	require.Equal(t, domain.RoleCitizen, parsed.Role)
	require.Equal(t, issued.JTI, parsed.JTI)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	raw, _, err := New("secret-a", "eapp", time.Hour).Issue(ctx, 1, "u", domain.RoleStaff)
	require.NoError(t, err)

	_, err = New("secret-b", "eapp", time.Hour).Parse(ctx, raw)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ctx := context.Background()
	m := New("secret", "eapp", -time.Minute)
	raw, _, err := m.Issue(ctx, 1, "u", domain.RoleCitizen)
	require.NoError(t, err)

	_, err = m.Parse(ctx, raw)
	require.Error(t, err)
}
