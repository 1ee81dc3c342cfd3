package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(secret, "u-1", "admin", "orders-api", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, "orders-api", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	valid, err := Generate(secret, "u-1", "admin", "orders-api", time.Hour)
	require.NoError(t, err)
	expired, err := Generate(secret, "u-1", "admin", "orders-api", -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		secret string
		issuer string
		token  string
	}{
		{"firma incorrecta", "otro-secret", "orders-api", valid},
		{"expirado", secret, "orders-api", expired},
		{"emisor distinto", secret, "billing", valid},
		{"basura", secret, "", "no-es-un-jwt"},
		{"secret vacío", "", "", valid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}
}
