package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

var (
	// ErrNoCertsFound is returned when a PEM bundle holds no certificate.
	ErrNoCertsFound = errors.New("tlsroots: no certificates found in PEM data")

	// ErrIncompleteKeyPair is returned when only one of cert and key is set.
	ErrIncompleteKeyPair = errors.New("tlsroots: client certificate and key must be set together")
)

// Pool is a set of trusted root certificates.
type Pool struct {
	certPool *x509.CertPool
}

// NewPool returns a pool seeded with the system roots. Systems without a
// readable root store get an empty pool.
func NewPool() *Pool {
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	return &Pool{certPool: pool}
}

// NewEmptyPool returns a pool with no roots.
func NewEmptyPool() *Pool {
	return &Pool{certPool: x509.NewCertPool()}
}

// AddCertFile adds every certificate in a PEM file.
func (p *Pool) AddCertFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read CA file %s: %w", path, err)
	}
	if err := p.AddCertPEM(data); err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}
	return nil
}

// AddCertPEM adds every CERTIFICATE block in pemData.
func (p *Pool) AddCertPEM(pemData []byte) error {
	var added int
	for len(pemData) > 0 {
		var block *pem.Block
		block, pemData = pem.Decode(pemData)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("tlsroots: parse certificate: %w", err)
		}
		p.certPool.AddCert(cert)
		added++
	}
	if added == 0 {
		return ErrNoCertsFound
	}
	return nil
}

// Pool returns the underlying x509.CertPool.
func (p *Pool) Pool() *x509.CertPool {
	return p.certPool
}

// ClientOptions selects the files used for the client TLS configuration.
type ClientOptions struct {
	CAFile   string
	CertFile string
	KeyFile  string
}

// IsZero reports whether no file is configured.
func (o ClientOptions) IsZero() bool {
	return o.CAFile == "" && o.CertFile == "" && o.KeyFile == ""
}

// ClientConfig builds a client TLS configuration. It returns a nil config
// when opts is zero, so the transport keeps its defaults. The returned
// Watcher is non-nil only when a client certificate is configured; the
// caller may start it to follow certificate rotation.
func ClientConfig(opts ClientOptions, log logger.Logger) (*tls.Config, *Watcher, error) {
	if opts.IsZero() {
		return nil, nil, nil
	}
	if (opts.CertFile == "") != (opts.KeyFile == "") {
		return nil, nil, ErrIncompleteKeyPair
	}

	pool := NewPool()
	if opts.CAFile != "" {
		if err := pool.AddCertFile(opts.CAFile); err != nil {
			return nil, nil, err
		}
	}

	cfg := &tls.Config{
		RootCAs:    pool.Pool(),
		MinVersion: tls.VersionTLS12,
	}

	var w *Watcher
	if opts.CertFile != "" {
		var err error
		w, err = NewWatcher(opts.CertFile, opts.KeyFile, WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		cfg.GetClientCertificate = w.GetClientCertificate
	}

	return cfg, w, nil
}
