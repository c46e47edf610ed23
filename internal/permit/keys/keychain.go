package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	pemTypePrivateKey = "PRIVATE KEY"
	pemTypePublicKey  = "PUBLIC KEY"

	keyFileMode = 0o600
)

var (
	ErrSigningKeyUnavailable = errors.New("signing key unavailable or malformed")
)

// Keychain holds the process-wide Ed25519 keypair. It is constructed once
// at startup and read-only afterwards; the private key never leaves the
// process. There is no rotation in this design.
type Keychain struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// Generate creates a fresh keypair without persisting it.
func Generate() (*Keychain, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate ed25519 keypair")
	}

	return &Keychain{priv: priv, pub: pub}, nil
}

// LoadOrGenerate loads the PKCS#8 PEM key file at path, generating and
// persisting a new keypair when the file does not exist yet.
func LoadOrGenerate(path string) (*Keychain, error) {
	if path == "" {
		return nil, errors.New("signing key file path is required, set PERMIT_SIGNING_KEY_FILE")
	}

	pemBytes, err := os.ReadFile(path)
	if err == nil {
		return fromPEM(pemBytes)
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read signing key file %s", path)
	}

	log.Info().Str("path", path).Msg("No signing key file found, generating a new keypair")

	kc, err := Generate()
	if err != nil {
		return nil, err
	}

	if err := kc.writePEM(path); err != nil {
		return nil, err
	}

	return kc, nil
}

func fromPEM(pemBytes []byte) (*Keychain, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil || block.Type != pemTypePrivateKey {
		return nil, errors.Wrap(ErrSigningKeyUnavailable, "signing key file is not a PRIVATE KEY PEM block")
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.Wrap(ErrSigningKeyUnavailable, err.Error())
	}

	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.Wrap(ErrSigningKeyUnavailable, "signing key is not an ed25519 key")
	}

	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.Wrap(ErrSigningKeyUnavailable, "cannot derive public key")
	}

	return &Keychain{priv: priv, pub: pub}, nil
}

// writePEM persists the private key via a temp file + rename so a crash
// never leaves a truncated key on disk.
func (k *Keychain) writePEM(path string) error {
	der, err := x509.MarshalPKCS8PrivateKey(k.priv)
	if err != nil {
		return errors.Wrap(err, "failed to marshal private key")
	}

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: der})

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".signing-key-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp key file")
	}
	tmpPath := tmp.Name()

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(pemBytes); err != nil {
		return errors.Wrap(err, "failed to write temp key file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "failed to sync temp key file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp key file")
	}
	if err := os.Chmod(tmpPath, keyFileMode); err != nil {
		return errors.Wrap(err, "failed to chmod temp key file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "failed to move key file into place")
	}

	return nil
}

// Sign signs the exact given bytes with the private key.
func (k *Keychain) Sign(data []byte) ([]byte, error) {
	if len(k.priv) != ed25519.PrivateKeySize {
		return nil, ErrSigningKeyUnavailable
	}

	return ed25519.Sign(k.priv, data), nil
}

// Public returns the raw verification key.
func (k *Keychain) Public() ed25519.PublicKey {
	return k.pub
}

// PublicPEM exports the verification key as a PKIX PEM string, the form
// served by the public key endpoint for verifier bootstrap.
func (k *Keychain) PublicPEM() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(k.pub)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal public key")
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: pemTypePublicKey, Bytes: der})), nil
}
