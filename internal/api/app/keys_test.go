package app

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitKeys(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("absent keys are tolerated", func(t *testing.T) {
		signer, verifier, err := InitKeys(Config{Issuer: "tally"}, logger)
		require.NoError(t, err)
		require.Nil(t, signer)
		require.Nil(t, verifier)
	})

	t.Run("valid PEM pair loads", func(t *testing.T) {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		privPEM := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		require.NoError(t, err)
		pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

		signer, verifier, err := InitKeys(Config{
			Issuer:        "tally",
			PrivateKeyPEM: string(privPEM),
			PublicKeyPEM:  string(pubPEM),
		}, logger)
		require.NoError(t, err)
		require.NotNil(t, signer)
		require.NotNil(t, verifier)
	})

	t.Run("malformed PEM aborts startup", func(t *testing.T) {
		_, _, err := InitKeys(Config{
			Issuer:        "tally",
			PrivateKeyPEM: "not a pem",
		}, logger)
		require.Error(t, err)
	})
}
