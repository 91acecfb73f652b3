package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

// InitKeys builds the RS256 signer and verifier from the configured PEMs.
//
// Missing key material is not fatal: the server boots with nil keys and
// every auth-dependent route answers with a configuration error until the
// deployment is fixed. A present-but-unparsable PEM is an operator mistake
// and does abort startup.
func InitKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	var (
		signer   jwtx.Signer
		verifier jwtx.Verifier
		err      error
	)

	if cfg.PrivateKeyPEM == "" {
		logger.Warn("TALLY_PRIVATE_KEY not set; token signing disabled")
	} else {
		signer, err = jwtx.NewSignerRS256([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, nil, fmt.Errorf("load private key: %w", err)
		}
	}

	if cfg.PublicKeyPEM == "" {
		logger.Warn("TALLY_PUBLIC_KEY not set; token verification disabled")
	} else {
		verifier, err = jwtx.NewVerifierRS256([]byte(cfg.PublicKeyPEM), cfg.Issuer)
		if err != nil {
			return nil, nil, fmt.Errorf("load public key: %w", err)
		}
	}

	return signer, verifier, nil
}
