package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"Dilithium-Signature/dilithium"
	dilithiumio "Dilithium-Signature/dilithium/io"
	"Dilithium-Signature/dilithium/keys"
	"Dilithium-Signature/drbg"
	"Dilithium-Signature/measure"
)

func usage() {
	fmt.Println(`usage: dilithium <gen|sign|verify> [options]

Subcommands:
  gen      Generate a Dilithium3 keypair and write <dir>/{public,private}.json
           Flags:
             -dir    <path>     key directory (default: dilithium_keys)
             -seed   <hex>      32-byte hex seed for the deterministic
                                AES-256 CTR generator (default: system entropy)
             -params <path>     validate a Parameters.json before generating

  sign     Sign a message and write <dir>/signature.json
           Flags:
             -dir <path>        key directory (default: dilithium_keys)
             -m   <string>      message to sign (required)
             -randomized        draw the masking seed from system entropy
                                instead of deriving it from the key

  verify   Verify <dir>/signature.json against <dir>/public.json
           Flags:
             -dir <path>        key directory (default: dilithium_keys)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	dir := fs.String("dir", keys.DefaultDir, "key directory")
	seedHex := fs.String("seed", "", "32-byte hex seed for deterministic generation")
	paramsPath := fs.String("params", "", "parameter file to validate")
	fs.Parse(args)

	if *paramsPath != "" {
		if _, err := dilithiumio.LoadParams(*paramsPath, false); err != nil {
			log.Fatalf("gen: %v", err)
		}
	}

	rng, err := sourceFromFlag(*seedHex)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}

	start := time.Now()
	pk, sk, err := dilithium.KeyGen(rng)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	elapsed := time.Since(start)
	measure.Global.AddDuration("keygen_ns", elapsed)

	if err := keys.SavePublic(*dir, pk); err != nil {
		log.Fatalf("gen: save public: %v", err)
	}
	if err := keys.SavePrivate(*dir, sk); err != nil {
		log.Fatalf("gen: save private: %v", err)
	}
	fmt.Printf("keypair written to %s (pk %d B, sk %d B) in %s\n",
		*dir, dilithium.PublicKeySize, dilithium.SecretKeySize, elapsed)
	measure.Global.Dump()
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	dir := fs.String("dir", keys.DefaultDir, "key directory")
	msg := fs.String("m", "", "message to sign")
	randomized := fs.Bool("randomized", false, "randomized signing")
	fs.Parse(args)

	if *msg == "" {
		log.Fatal("sign: -m is required")
	}
	sk, err := keys.LoadPrivate(*dir)
	if err != nil {
		log.Fatalf("sign: load private key: %v", err)
	}

	start := time.Now()
	var sig []byte
	if *randomized {
		sig, err = dilithium.SignRandomized(sk, []byte(*msg), drbg.SystemSource{})
	} else {
		sig, err = dilithium.Sign(sk, []byte(*msg))
	}
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	elapsed := time.Since(start)
	measure.Global.AddDuration("sign_ns", elapsed)

	if err := keys.SaveSignature(*dir, []byte(*msg), sig); err != nil {
		log.Fatalf("sign: save signature: %v", err)
	}
	fmt.Printf("signature written to %s (%d B) in %s\n", *dir, len(sig), elapsed)
	measure.Global.Dump()
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	dir := fs.String("dir", keys.DefaultDir, "key directory")
	fs.Parse(args)

	pk, err := keys.LoadPublic(*dir)
	if err != nil {
		log.Fatalf("verify: load public key: %v", err)
	}
	msg, sig, err := keys.LoadSignature(*dir)
	if err != nil {
		log.Fatalf("verify: load signature: %v", err)
	}

	start := time.Now()
	ok := dilithium.Verify(pk, msg, sig)
	elapsed := time.Since(start)
	measure.Global.AddDuration("verify_ns", elapsed)

	if !ok {
		fmt.Printf("verify: FAIL (%s)\n", elapsed)
		os.Exit(1)
	}
	fmt.Printf("verify: OK (%s)\n", elapsed)
	measure.Global.Dump()
}

// sourceFromFlag picks the randomness source: system entropy by
// default, or the deterministic AES-256 CTR generator when a hex seed
// is given.
func sourceFromFlag(seedHex string) (dilithium.RandomSource, error) {
	if seedHex == "" {
		return drbg.SystemSource{}, nil
	}
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("bad -seed: %w", err)
	}
	if len(raw) != drbg.SeedSize {
		return nil, fmt.Errorf("bad -seed: want %d bytes, got %d", drbg.SeedSize, len(raw))
	}
	var entropy [drbg.SeedSize]byte
	copy(entropy[:], raw)
	return drbg.NewAESDRBG(entropy, [drbg.NonceSize]byte{}), nil
}
