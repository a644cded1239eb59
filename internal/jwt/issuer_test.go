package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer("  ", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	iss, err := NewIssuer("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, iss.TTL)
}

func TestSignParse_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	tok, exp, err := iss.Sign("seller@x.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "seller@x.com", claims.Email)
}

func TestSign_EmptyEmail(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	_, _, err := iss.Sign("")
	assert.ErrorIs(t, err, ErrEmptyEmail)
}

func TestParse_WrongSecret(t *testing.T) {
	a, _ := NewIssuer("secret-a", time.Hour)
	b, _ := NewIssuer("secret-b", time.Hour)

	tok, _, err := a.Sign("a@x.com")
	require.NoError(t, err)

	_, err = b.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := iss.Sign("a@x.com")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := iss.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS512, Claims{Email: "a@x.com"})
	raw, err := tk.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = iss.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_MissingEmail(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{"sub": "x"})
	raw, err := tk.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = iss.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
