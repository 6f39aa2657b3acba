package server

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrCertificateNotFound is returned when no localhost certificate pair exists
// in any of the known locations.
var ErrCertificateNotFound = errors.New("TLS certificate not found")

// OfficeDevCertsDir is where office-addin-dev-certs installs its certificates,
// relative to the user's home directory.
const OfficeDevCertsDir = ".office-addin-dev-certs"

// Certificate is a PEM certificate and key file pair.
type Certificate struct {
	CertFile string
	KeyFile  string
}

// CertificateCandidates lists the locations searched by FindCertificate, in
// order of preference.
func CertificateCandidates(home, root string) []Certificate {
	var candidates []Certificate
	if home != "" {
		dir := filepath.Join(home, OfficeDevCertsDir)
		candidates = append(candidates, Certificate{
			CertFile: filepath.Join(dir, "localhost.crt"),
			KeyFile:  filepath.Join(dir, "localhost.key"),
		})
	}
	dir := filepath.Join(root, "certs")
	candidates = append(candidates, Certificate{
		CertFile: filepath.Join(dir, "localhost.crt"),
		KeyFile:  filepath.Join(dir, "localhost.key"),
	})
	return candidates
}

// FindCertificate returns the first candidate whose certificate and key both
// exist.
func FindCertificate(home, root string) (Certificate, error) {
	for _, c := range CertificateCandidates(home, root) {
		if fileExists(c.CertFile) && fileExists(c.KeyFile) {
			return c, nil
		}
	}
	return Certificate{}, ErrCertificateNotFound
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
