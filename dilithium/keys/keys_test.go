package keys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Dilithium-Signature/dilithium"
	"Dilithium-Signature/drbg"
)

func testKeyPair(t *testing.T) (*dilithium.PublicKey, *dilithium.SecretKey) {
	t.Helper()
	seed := make([]byte, dilithium.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	pk, sk, err := dilithium.NewKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	return pk, sk
}

func TestKeyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pk, sk := testKeyPair(t)

	if err := SavePublic(dir, pk); err != nil {
		t.Fatalf("save public: %v", err)
	}
	if err := SavePrivate(dir, sk); err != nil {
		t.Fatalf("save private: %v", err)
	}

	gotPK, err := LoadPublic(dir)
	if err != nil {
		t.Fatalf("load public: %v", err)
	}
	if !pk.Equal(gotPK) {
		t.Fatal("loaded public key differs")
	}
	gotSK, err := LoadPrivate(dir)
	if err != nil {
		t.Fatalf("load private: %v", err)
	}
	if string(sk.Bytes()) != string(gotSK.Bytes()) {
		t.Fatal("loaded secret key differs")
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pk, sk := testKeyPair(t)

	msg := []byte("persisted message")
	sig, err := dilithium.Sign(sk, msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := SaveSignature(dir, msg, sig); err != nil {
		t.Fatalf("save signature: %v", err)
	}

	gotMsg, gotSig, err := LoadSignature(dir)
	if err != nil {
		t.Fatalf("load signature: %v", err)
	}
	if string(gotMsg) != string(msg) {
		t.Fatalf("loaded message %q want %q", gotMsg, msg)
	}
	if !dilithium.Verify(pk, gotMsg, gotSig) {
		t.Fatal("loaded signature does not verify")
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	pk, _ := testKeyPair(t)
	if err := SavePublic(dir, pk); err != nil {
		t.Fatalf("save public: %v", err)
	}

	path := filepath.Join(dir, "public.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mangled := strings.Replace(string(data), keyVersion, "dilithium3-key-v0", 1)
	if err := os.WriteFile(path, []byte(mangled), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPublic(dir); err == nil {
		t.Fatal("expected a version error")
	}
}

func TestLoadRejectsBadHex(t *testing.T) {
	dir := t.TempDir()
	rec := PublicKey{
		Version: keyVersion,
		Params:  currentParams(),
		Key:     "not hex at all",
	}
	if err := writeJSON(dir, "public.json", rec); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPublic(dir); err == nil {
		t.Fatal("expected a hex decode error")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := LoadPublic(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestDefaultDirFallback(t *testing.T) {
	// An empty dir argument resolves to DefaultDir relative to the
	// working directory; run inside a temp dir to keep the tree clean.
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)

	pk, _, err := dilithium.KeyGen(drbg.SystemSource{})
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if err := SavePublic("", pk); err != nil {
		t.Fatalf("save public: %v", err)
	}
	if _, err := os.Stat(filepath.Join(DefaultDir, "public.json")); err != nil {
		t.Fatalf("default dir not used: %v", err)
	}
	got, err := LoadPublic("")
	if err != nil {
		t.Fatalf("load public: %v", err)
	}
	if !pk.Equal(got) {
		t.Fatal("loaded public key differs")
	}
}
