package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
)

// BuildUpstreamTLSConfig returns the client TLS settings used when talking to
// the Flow API. A nil config means the transport defaults apply.
func BuildUpstreamTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	if cfg.CACert == "" && !cfg.InsecureSkipVerify {
		return nil, nil
	}

	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to load system CA pool: %w", err)
	}

	if cfg.CACert != "" {
		caPath, err := resolvePath(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("resolve CA cert path: %w", err)
		}
		caBytes, err := os.ReadFile(caPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		if ok := rootCAs.AppendCertsFromPEM(caBytes); !ok {
			return nil, fmt.Errorf("failed to append CA certificate from %s", cfg.CACert)
		}
	}

	return &tls.Config{
		RootCAs:            rootCAs,
		InsecureSkipVerify: cfg.InsecureSkipVerify, // #nosec G402
		MinVersion:         tls.VersionTLS12,
	}, nil
}

func resolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	projectPath, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(projectPath, path), nil
}
