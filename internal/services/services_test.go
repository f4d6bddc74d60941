package services

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/cheetahbyte/keyforge/internal/config"
	"github.com/cheetahbyte/keyforge/internal/handlers/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Products: map[string]string{"alpha": "alpha-secret"},
		Lookup:   config.LookupConfig{Secret: "lookup"},
		Signing:  config.SigningConfig{TokenTTL: time.Hour},
	}
}

func TestInitServicesWithoutSigning(t *testing.T) {
	stack, err := InitServices(testConfig(), discardLogger())
	require.NoError(t, err)
	require.NotNil(t, stack.Serial())
	require.NotNil(t, stack.Metrics())

	resp, err := stack.Serial().Issue(context.Background(), dto.SerialIssueRequest{Product: "alpha", Version: intPtr(8)})
	require.NoError(t, err)
	assert.Empty(t, resp.Serials[0].Token)
}

func TestInitServicesWithSigning(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Signing.PrivateKey = base64.StdEncoding.EncodeToString(priv)
	cfg.Signing.PublicKey = base64.StdEncoding.EncodeToString(pub)

	stack, err := InitServices(cfg, discardLogger())
	require.NoError(t, err)
	resp, err := stack.Serial().Issue(context.Background(), dto.SerialIssueRequest{Product: "alpha", Version: intPtr(8)})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Serials[0].Token)
}

func TestInitServicesBadKey(t *testing.T) {
	cfg := testConfig()
	cfg.Signing.PrivateKey = base64.StdEncoding.EncodeToString([]byte("short"))
	_, err := InitServices(cfg, discardLogger())
	assert.Error(t, err)
}

func TestInitServicesEmptyLookupSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Lookup.Secret = ""
	_, err := InitServices(cfg, discardLogger())
	assert.Error(t, err)
}

func TestInitServicesMismatchedPublicKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Signing.PrivateKey = base64.StdEncoding.EncodeToString(priv)
	cfg.Signing.PublicKey = base64.StdEncoding.EncodeToString(otherPub)

	_, err = InitServices(cfg, discardLogger())
	assert.ErrorContains(t, err, "does not match")
}
