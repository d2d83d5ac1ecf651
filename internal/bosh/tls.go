package bosh

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

var (
	ErrCACert = errors.New("error loading BOSH CA certificate")
)

// TLSConfig returns the TLS configuration for the director connection.
//
// With no CA file and insecure unset, nil is returned and the system roots apply.
func TLSConfig(caCertFile string, insecure bool) (*tls.Config, error) {
	if caCertFile == "" && !insecure {
		return nil, nil
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if insecure {
		// nolint:gosec // explicitly opted in with BOSH_INSECURE
		cfg.InsecureSkipVerify = true
		return cfg, nil
	}

	pem, err := os.ReadFile(caCertFile)
	if err != nil {
		return nil, errors.Wrap(ErrCACert, err.Error())
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}

	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Wrap(ErrCACert, "no certificates found in "+caCertFile)
	}

	cfg.RootCAs = pool

	return cfg, nil
}
