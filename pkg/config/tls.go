package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
)

// BackendTLSConfig configures the client side of TLS connections to backends.
type BackendTLSConfig struct {
	CACert              string `mapstructure:"ca_cert"`
	ClientCert          string `mapstructure:"client_cert"`
	ClientKey           string `mapstructure:"client_key"`
	DisableSystemCAPool bool   `mapstructure:"disable_system_ca_pool"`
	InsecureSkipVerify  bool   `mapstructure:"insecure_skip_verify"`
	MaxVersion          string `mapstructure:"max_version"`
}

// BuildBackendTLSConfig returns nil when nothing beyond the defaults is configured.
func BuildBackendTLSConfig(cfg BackendTLSConfig) (*tls.Config, error) {
	if cfg == (BackendTLSConfig{}) {
		return nil, nil
	}

	var certificates []tls.Certificate
	if cfg.ClientCert != "" || cfg.ClientKey != "" {
		if cfg.ClientCert == "" || cfg.ClientKey == "" {
			return nil, fmt.Errorf("backend tls: client_cert and client_key must be set together")
		}
		cert, err := tls.LoadX509KeyPair(resolvePath(cfg.ClientCert), resolvePath(cfg.ClientKey))
		if err != nil {
			return nil, fmt.Errorf("load client certificate/key: %w", err)
		}
		certificates = append(certificates, cert)
	}

	var rootCAs *x509.CertPool
	if cfg.DisableSystemCAPool {
		rootCAs = x509.NewCertPool()
	} else {
		var err error
		rootCAs, err = x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("failed to load system CA pool: %w", err)
		}
	}

	if cfg.CACert != "" {
		caBytes, err := os.ReadFile(resolvePath(cfg.CACert)) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		if ok := rootCAs.AppendCertsFromPEM(caBytes); !ok {
			return nil, fmt.Errorf("failed to append CA cert from %s", cfg.CACert)
		}
	}

	return &tls.Config{
		RootCAs:            rootCAs,
		Certificates:       certificates,
		InsecureSkipVerify: cfg.InsecureSkipVerify, // #nosec G402
		MinVersion:         tls.VersionTLS12,
		MaxVersion:         tlsVersion(cfg.MaxVersion),
	}, nil
}

// resolvePath anchors relative paths at the working directory.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(wd, path)
}

func tlsVersion(version string) uint16 {
	switch version {
	case "TLS12":
		return tls.VersionTLS12
	default:
		return tls.VersionTLS13
	}
}
