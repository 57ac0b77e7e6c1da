// Package keys persists Dilithium3 keys and signatures as JSON bundles
// under a key directory, with the fixed-length wire encodings stored as
// hex strings.
package keys

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Dilithium-Signature/dilithium"
)

// DefaultDir is the key directory used when none is given.
const DefaultDir = "dilithium_keys"

const keyVersion = "dilithium3-key-v1"
const sigVersion = "dilithium3-signature-v1"

// Params identifies the parameter set a bundle was written for.
type Params struct {
	N int `json:"N"`
	Q int `json:"Q"`
	K int `json:"K"`
	L int `json:"L"`
}

func currentParams() Params {
	return Params{N: dilithium.N, Q: dilithium.Q, K: dilithium.K, L: dilithium.L}
}

// PublicKey is the on-disk form of a public key.
type PublicKey struct {
	Version string `json:"version"`
	Created string `json:"created"`
	Params  Params `json:"params"`
	Key     string `json:"key"`
}

// PrivateKey is the on-disk form of a secret key.
type PrivateKey struct {
	Version string `json:"version"`
	Created string `json:"created"`
	Params  Params `json:"params"`
	Key     string `json:"key"`
}

// Signature is the on-disk form of a signature bundle.
type Signature struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Params    Params `json:"params"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

func writeJSON(dir, name string, v any) error {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(dir, name string, v any) error {
	if dir == "" {
		dir = DefaultDir
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SavePublic writes pk to <dir>/public.json.
func SavePublic(dir string, pk *dilithium.PublicKey) error {
	rec := PublicKey{
		Version: keyVersion,
		Created: time.Now().UTC().Format(time.RFC3339),
		Params:  currentParams(),
		Key:     hex.EncodeToString(pk.Bytes()),
	}
	return writeJSON(dir, "public.json", rec)
}

// LoadPublic reads and decodes <dir>/public.json.
func LoadPublic(dir string) (*dilithium.PublicKey, error) {
	var rec PublicKey
	if err := readJSON(dir, "public.json", &rec); err != nil {
		return nil, err
	}
	if rec.Version != keyVersion {
		return nil, fmt.Errorf("keys: unsupported public key version %q", rec.Version)
	}
	raw, err := hex.DecodeString(rec.Key)
	if err != nil {
		return nil, fmt.Errorf("keys: public key hex: %w", err)
	}
	return dilithium.ParsePublicKey(raw)
}

// SavePrivate writes sk to <dir>/private.json.
func SavePrivate(dir string, sk *dilithium.SecretKey) error {
	rec := PrivateKey{
		Version: keyVersion,
		Created: time.Now().UTC().Format(time.RFC3339),
		Params:  currentParams(),
		Key:     hex.EncodeToString(sk.Bytes()),
	}
	return writeJSON(dir, "private.json", rec)
}

// LoadPrivate reads and decodes <dir>/private.json.
func LoadPrivate(dir string) (*dilithium.SecretKey, error) {
	var rec PrivateKey
	if err := readJSON(dir, "private.json", &rec); err != nil {
		return nil, err
	}
	if rec.Version != keyVersion {
		return nil, fmt.Errorf("keys: unsupported private key version %q", rec.Version)
	}
	raw, err := hex.DecodeString(rec.Key)
	if err != nil {
		return nil, fmt.Errorf("keys: private key hex: %w", err)
	}
	return dilithium.ParseSecretKey(raw)
}

// SaveSignature writes a signature bundle to <dir>/signature.json.
func SaveSignature(dir string, msg, sig []byte) error {
	rec := Signature{
		Version:   sigVersion,
		Created:   time.Now().UTC().Format(time.RFC3339),
		Params:    currentParams(),
		Message:   hex.EncodeToString(msg),
		Signature: hex.EncodeToString(sig),
	}
	return writeJSON(dir, "signature.json", rec)
}

// LoadSignature reads <dir>/signature.json and returns the message and
// signature bytes.
func LoadSignature(dir string) (msg, sig []byte, err error) {
	var rec Signature
	if err := readJSON(dir, "signature.json", &rec); err != nil {
		return nil, nil, err
	}
	if rec.Version != sigVersion {
		return nil, nil, fmt.Errorf("keys: unsupported signature version %q", rec.Version)
	}
	msg, err = hex.DecodeString(rec.Message)
	if err != nil {
		return nil, nil, fmt.Errorf("keys: message hex: %w", err)
	}
	sig, err = hex.DecodeString(rec.Signature)
	if err != nil {
		return nil, nil, fmt.Errorf("keys: signature hex: %w", err)
	}
	return msg, sig, nil
}
