package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasklist/go-auth"
)

type tokenCfg struct {
	signingKey string
	expiration int
	issuer     string
	audience   []string
}

func (c tokenCfg) GetSigningKey() string      { return c.signingKey }
func (c tokenCfg) GetTokenExpiration() int    { return c.expiration }
func (c tokenCfg) GetIssuer() string          { return c.issuer }
func (c tokenCfg) GetAudience() []string      { return c.audience }
func (c tokenCfg) GetDefaultRoleName() string { return auth.DefaultRoleName }

func testTokenConfig() tokenCfg {
	return tokenCfg{
		signingKey: "test-signing-key",
		expiration: 1,
		issuer:     "tasklist",
		audience:   []string{"tasklist-api"},
	}
}

func testIdentity() TestIdentity {
	return TestIdentity{
		id:       "42",
		username: "alice",
		email:    "alice@x.com",
		roles:    []string{"USER"},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	service := auth.NewTokenService(testTokenConfig())

	token, err := service.Generate(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, []string{"USER"}, claims.Roles)
	assert.Equal(t, "tasklist", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	sctx := claims.SecurityContext()
	assert.Equal(t, "alice", sctx.Username)
	assert.True(t, sctx.HasRole("USER"))
	assert.Equal(t, "42", sctx.Claims["uid"])
}

func TestTokenValidateRejectsForeignKey(t *testing.T) {
	minter := auth.NewTokenService(testTokenConfig())

	other := testTokenConfig()
	other.signingKey = "a-different-key"
	validator := auth.NewTokenService(other)

	token, err := minter.Generate(testIdentity())
	require.NoError(t, err)

	claims, err := validator.Validate(token)
	assert.Nil(t, claims)
	require.Error(t, err)
}

func TestTokenValidateRejectsGarbage(t *testing.T) {
	service := auth.NewTokenService(testTokenConfig())

	tests := []struct {
		name string
		raw  string
	}{
		{"Empty string", ""},
		{"Not a JWT", "not-a-token"},
		{"Truncated JWT", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Validate(tt.raw)
			assert.Nil(t, claims)
			assert.Error(t, err)
		})
	}
}

func TestTokenValidateChecksIssuer(t *testing.T) {
	minter := auth.NewTokenService(testTokenConfig())

	other := testTokenConfig()
	other.issuer = "someone-else"
	validator := auth.NewTokenService(other)

	token, err := minter.Generate(testIdentity())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.Error(t, err)
}

func TestTokenGenerateNilIdentity(t *testing.T) {
	service := auth.NewTokenService(testTokenConfig())

	token, err := service.Generate(nil)
	assert.Empty(t, token)
	assert.Error(t, err)
}
