package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"github.com/EphemeralEpoch/smart-book-gist/internal/certs"
)

// resolveTrustBundle picks the bundle used to verify the remote endpoint:
// an explicit override from configuration wins, then the project-local
// combined bundle if present, then "" for the platform default roots.
func resolveTrustBundle(override string) string {
	if override != "" {
		return override
	}
	if _, err := os.Stat(certs.DefaultBundlePath); err == nil {
		return certs.DefaultBundlePath
	}
	return ""
}

// newHTTPClient builds the one outbound client. An empty bundlePath keeps the
// default transport and with it the platform trust store. The bundle bytes are
// loaded without validation; a bundle with no parsable certificate yields an
// empty pool and fails at handshake, matching the byte-level tolerance of the
// setup step.
func newHTTPClient(bundlePath string) (*http.Client, error) {
	if bundlePath == "" {
		return &http.Client{}, nil
	}
	pem, err := os.ReadFile(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("read trust bundle %s: %w", bundlePath, err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(pem)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	return &http.Client{Transport: transport}, nil
}
