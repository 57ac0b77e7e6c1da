// Package io loads the signature system's parameter file. The ring and
// module parameters are fixed at the Dilithium3 set; the loader exists
// to validate a deployment's configuration against that set, not to
// make the engine generic.
package io

import (
	"encoding/json"
	"fmt"
	"os"

	"Dilithium-Signature/dilithium"
)

// SystemParams is the parameter description read from disk.
type SystemParams struct {
	N      int    `json:"N"`
	Q      uint64 `json:"Q"`
	K      int    `json:"K"`
	L      int    `json:"L"`
	Eta    int    `json:"eta"`
	Tau    int    `json:"tau"`
	Gamma1 uint64 `json:"gamma1"`
	Gamma2 uint64 `json:"gamma2"`
	Omega  int    `json:"omega"`
	D      int    `json:"d"`
}

// Default returns the fixed Dilithium3 parameter set.
func Default() SystemParams {
	return SystemParams{
		N:      dilithium.N,
		Q:      dilithium.Q,
		K:      dilithium.K,
		L:      dilithium.L,
		Eta:    dilithium.Eta,
		Tau:    dilithium.Tau,
		Gamma1: dilithium.Gamma1,
		Gamma2: dilithium.Gamma2,
		Omega:  dilithium.Omega,
		D:      dilithium.D,
	}
}

// LoadParams reads a JSON parameter file and checks it against the
// fixed Dilithium3 set. With allowMismatch the values are returned for
// inspection even when they differ; the engine itself never runs on a
// mismatched set.
func LoadParams(path string, allowMismatch bool) (SystemParams, error) {
	var p SystemParams
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("io: parse %s: %w", path, err)
	}
	if p.N == 0 || p.Q == 0 {
		return p, fmt.Errorf("io: invalid or missing N/Q in %s", path)
	}
	if !allowMismatch {
		if err := p.Validate(); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Validate reports whether p is exactly the supported Dilithium3 set.
func (p SystemParams) Validate() error {
	want := Default()
	// Optional fields default to the fixed set when omitted.
	if p.K == 0 {
		p.K = want.K
	}
	if p.L == 0 {
		p.L = want.L
	}
	if p.Eta == 0 {
		p.Eta = want.Eta
	}
	if p.Tau == 0 {
		p.Tau = want.Tau
	}
	if p.Gamma1 == 0 {
		p.Gamma1 = want.Gamma1
	}
	if p.Gamma2 == 0 {
		p.Gamma2 = want.Gamma2
	}
	if p.Omega == 0 {
		p.Omega = want.Omega
	}
	if p.D == 0 {
		p.D = want.D
	}
	if p != want {
		return fmt.Errorf("io: unsupported parameter set %+v (want Dilithium3 %+v)", p, want)
	}
	return nil
}
