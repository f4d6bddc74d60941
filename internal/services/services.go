package services

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cheetahbyte/keyforge/internal/config"
	"github.com/cheetahbyte/keyforge/internal/licensecrypto"
	"github.com/cheetahbyte/keyforge/internal/metrics"
)

type ServiceStack struct {
	serial  *SerialService
	metrics *metrics.Metrics
}

func InitServices(cfg *config.Config, log *slog.Logger) (ServiceStack, error) {
	m := metrics.New()

	generators := make(map[string]*licensecrypto.Generator, len(cfg.Products))
	for name, secret := range cfg.Products {
		generators[name] = licensecrypto.NewGenerator(secret)
	}

	signer, err := signerFromConfig(cfg.Signing, log)
	if err != nil {
		return ServiceStack{}, err
	}

	serial, err := NewSerialService(generators, []byte(cfg.Lookup.Secret), signer, m, log)
	if err != nil {
		return ServiceStack{}, err
	}
	return ServiceStack{serial: serial, metrics: m}, nil
}

func signerFromConfig(cfg config.SigningConfig, log *slog.Logger) (*TokenSigner, error) {
	if cfg.PrivateKey == "" {
		log.Warn("issuance token signing disabled, no private key configured")
		return nil, nil
	}
	pkBytes, err := base64.StdEncoding.DecodeString(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing private key: %w", err)
	}
	priv := ed25519.PrivateKey(pkBytes)
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid ed25519 private key size: %d", len(priv))
	}

	if cfg.PublicKey != "" {
		pbBytes, err := base64.StdEncoding.DecodeString(cfg.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode signing public key: %w", err)
		}
		if !ed25519.PublicKey(pbBytes).Equal(priv.Public()) {
			return nil, errors.New("configured public key does not match the signing key")
		}
	}
	return NewTokenSigner(priv, cfg.Audience, cfg.TokenTTL)
}

func (s ServiceStack) Serial() *SerialService { return s.serial }

func (s ServiceStack) Metrics() *metrics.Metrics { return s.metrics }
