package services

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRecords(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return len(records)
}

func TestSubmitSignup_ThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	sess, err := f.svc.SubmitLogin(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice@example.com", sess.Identifier())
	assert.NotEmpty(t, sess.ID())
	assert.Empty(t, sess.Lines())
	assert.True(t, sess.Total().IsZero())
}

func TestSubmitSignup_DuplicateLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "one"))
	before := countRecords(t, f.accountsPath)

	err := f.svc.SubmitSignup(ctx, "alice@example.com", "two")
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, before, countRecords(t, f.accountsPath))

	_, err = f.svc.SubmitLogin(ctx, "alice@example.com", "two")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSubmitSignup_EmptyFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})

	testCases := map[string]struct {
		identifier, secret string
	}{
		"empty identifier": {"", "pw"},
		"empty secret":     {"alice@example.com", ""},
		"both empty":       {"", ""},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := f.svc.SubmitSignup(ctx, tc.identifier, tc.secret)
			assert.ErrorIs(t, err, ErrEmptyCredentials)
		})
	}
	assert.Zero(t, countRecords(t, f.accountsPath))
}

func TestSubmitLogin_Failures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	testCases := map[string]struct {
		identifier, secret string
	}{
		"wrong secret":       {"alice@example.com", "S3CRET"},
		"unknown identifier": {"bob@example.com", "s3cret"},
		"empty pair":         {"", ""},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			sess, err := f.svc.SubmitLogin(ctx, tc.identifier, tc.secret)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, sess)
		})
	}
}

func TestPlainSecretsAreStoredVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	raw, err := os.ReadFile(f.accountsPath)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com,s3cret\r\n", string(raw))
}

func TestBcryptSecretMode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{SecretMode: SecretBcrypt})
	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	raw, err := os.ReadFile(f.accountsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
	assert.True(t, strings.HasPrefix(string(raw), "alice@example.com,$2"))

	_, err = f.svc.SubmitLogin(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = f.svc.SubmitLogin(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.SubmitLogin(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcryptMode_PlainRecordDoesNotMatch(t *testing.T) {
	ctx := context.Background()
	plain := newFixture(t, Options{})
	require.NoError(t, plain.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	hashed := New(plain.accounts, plain.orders, Options{SecretMode: SecretBcrypt})
	_, err := hashed.SubmitLogin(ctx, "alice@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSubmitLogin_Throttled(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	throttle := NewLoginThrottle(func() time.Time { return now })
	f := newFixture(t, Options{Throttle: throttle})
	require.NoError(t, f.svc.SubmitSignup(ctx, "alice@example.com", "s3cret"))

	_, err := f.svc.SubmitLogin(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Even the right secret is refused during the cooldown.
	_, err = f.svc.SubmitLogin(ctx, "alice@example.com", "s3cret")
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	assert.Equal(t, 2, throttled.WaitSeconds)

	now = now.Add(3 * time.Second)
	_, err = f.svc.SubmitLogin(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Zero(t, throttle.WaitSeconds("alice@example.com"))
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	svc := New(brokenStore{}, brokenOrders{}, Options{})

	err := svc.SubmitSignup(ctx, "alice@example.com", "pw")
	assert.ErrorIs(t, err, errDisk)
	assert.False(t, IsNotice(err))

	_, err = svc.SubmitLogin(ctx, "alice@example.com", "pw")
	assert.ErrorIs(t, err, errDisk)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseSecretMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SecretMode
		wantErr bool
	}{
		{"", SecretPlain, false},
		{"plain", SecretPlain, false},
		{" BCRYPT ", SecretBcrypt, false},
		{"md5", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSecretMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
