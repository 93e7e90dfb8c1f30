// Package certs builds a combined trust bundle: the public CA bundle followed
// by a custom corporate root certificate. Construction is byte-level only; no
// certificate is parsed or validated here, so a broken custom cert passes
// through and fails later during the TLS handshake.
package certs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBundlePath is the project-local combined bundle, shared with the
// client's trust resolution.
const DefaultBundlePath = ".certs/ca_bundle_with_zscaler.pem"

// ErrNoCustomCert means no custom root certificate was found in any of the
// well-known locations and none was supplied explicitly.
var ErrNoCustomCert = errors.New("no custom root certificate found in known locations")

// customCertCandidates are probed in priority order.
var customCertCandidates = []string{
	"/etc/ssl/certs/zscaler_root.pem",
	"/usr/local/share/ca-certificates/zscaler_root.crt",
	"/usr/local/share/ca-certificates/zscaler_root.pem",
}

// publicBundleCandidates are the standard Linux CA bundle locations, in
// priority order.
var publicBundleCandidates = []string{
	"/etc/ssl/certs/ca-certificates.crt",
	"/etc/pki/tls/certs/ca-bundle.crt",
	"/etc/ssl/ca-bundle.pem",
	"/etc/ssl/cert.pem",
}

// FindCustomCert returns the first existing candidate path. Under WSL it also
// scans each Windows user's Downloads folder for an exported cert.
func FindCustomCert() (string, error) {
	candidates := append([]string{}, customCertCandidates...)
	if users, err := os.ReadDir("/mnt/c/Users"); err == nil {
		for _, u := range users {
			dl := filepath.Join("/mnt/c/Users", u.Name(), "Downloads")
			candidates = append(candidates,
				filepath.Join(dl, "zscaler_root.cer"),
				filepath.Join(dl, "zscaler_root.crt"),
			)
		}
	}
	for _, p := range candidates {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", ErrNoCustomCert
}

// FindPublicBundle returns the first standard CA bundle present on this host.
func FindPublicBundle() (string, error) {
	for _, p := range publicBundleCandidates {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", errors.New("no public CA bundle found; pass one explicitly")
}

// WriteBundle concatenates the public bundle and the custom certificate into
// outPath: public bytes, a newline, then custom bytes, exactly. The write goes
// through a temp file and rename so a crash never leaves a partial bundle.
func WriteBundle(publicPath, customPath, outPath string) error {
	pub, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("read public bundle: %w", err)
	}
	custom, err := os.ReadFile(customPath)
	if err != nil {
		return fmt.Errorf("read custom cert: %w", err)
	}

	combined := make([]byte, 0, len(pub)+1+len(custom))
	combined = append(combined, pub...)
	combined = append(combined, '\n')
	combined = append(combined, custom...)

	return atomicWrite(outPath, combined, 0o644)
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	// Temp file in the target dir so the rename stays on one filesystem.
	f, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	ok := false
	defer func() {
		if !ok {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	ok = true
	return nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
