// Package keys reads and writes the PEM files holding a tool's RSA key pair.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MinBits is the smallest RSA modulus GenerateRSA accepts.
const MinBits = 2048

var (
	// ErrKeyFileNotFound is returned when a key file does not exist.
	ErrKeyFileNotFound = errors.New("key file not found")
	// ErrKeyFileExists is returned by WritePair instead of overwriting a key.
	ErrKeyFileExists = errors.New("key file already exists")
)

// Pair is a PEM encoded RSA key pair.
type Pair struct {
	PrivateKeyPEM string
	PublicKeyPEM  string
}

// Load reads both halves of a key pair. Both files are read in full before
// anything is signed.
func Load(privatePath, publicPath string) (*Pair, error) {
	priv, err := readPEM(privatePath)
	if err != nil {
		return nil, err
	}
	pub, err := ReadPublic(publicPath)
	if err != nil {
		return nil, err
	}
	return &Pair{PrivateKeyPEM: priv, PublicKeyPEM: pub}, nil
}

// ReadPublic reads a PEM public key file.
func ReadPublic(path string) (string, error) {
	return readPEM(path)
}

func readPEM(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrKeyFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	return string(b), nil
}

// GenerateRSA creates a new RSA key pair, the private key as PKCS#1
// ("RSA PRIVATE KEY") and the public key as PKIX ("PUBLIC KEY").
func GenerateRSA(bits int) (*Pair, error) {
	if bits < MinBits {
		return nil, fmt.Errorf("RSA keys must be at least %d bits, got %d", MinBits, bits)
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return &Pair{
		PrivateKeyPEM: string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})),
		PublicKeyPEM:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
	}, nil
}

// WritePair writes p to privatePath (mode 0600) and publicPath (mode 0644),
// creating parent directories. Existing files are never overwritten.
func WritePair(p *Pair, privatePath, publicPath string) error {
	for _, path := range []string{privatePath, publicPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrKeyFileExists, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(privatePath, []byte(p.PrivateKeyPEM), 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, []byte(p.PublicKeyPEM), 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}
