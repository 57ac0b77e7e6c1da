package dilithium

// Coefficients are stored as uint32 values canonically reduced to
// [0, Q). Negative quantities keep their mod-Q representative; the
// centered view is recovered with centered().

// reduceOnce reduces a value < 2Q to [0, Q).
func reduceOnce(a uint32) uint32 {
	x := a - Q
	x += (x >> 31) * Q
	return x
}

// addMod returns (a + b) mod Q for a, b in [0, Q).
func addMod(a, b uint32) uint32 {
	return reduceOnce(a + b)
}

// subMod returns (a - b) mod Q for a, b in [0, Q).
func subMod(a, b uint32) uint32 {
	return reduceOnce(a - b + Q)
}

// mulMod returns (a * b) mod Q. Plain 64-bit reduction: this build
// favours auditability over constant-time execution.
func mulMod(a, b uint32) uint32 {
	return uint32(uint64(a) * uint64(b) % Q)
}

// modPow returns base^exp mod Q by square and multiply.
func modPow(base, exp uint32) uint32 {
	result := uint64(1)
	b := uint64(base) % Q
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result * b % Q
		}
		b = b * b % Q
	}
	return uint32(result)
}

// modInv returns a^-1 mod Q (Q is prime, so a^(Q-2)).
func modInv(a uint32) uint32 {
	return modPow(a, Q-2)
}

// centered maps a in [0, Q) to its representative in
// [-(Q-1)/2, (Q-1)/2].
func centered(a uint32) int32 {
	if a > qMinus1Div2 {
		return int32(a) - Q
	}
	return int32(a)
}

// absCentered returns |centered(a)| = min(a, Q-a).
func absCentered(a uint32) uint32 {
	if a <= qMinus1Div2 {
		return a
	}
	return Q - a
}

// fromCentered maps a signed value in (-Q, Q) back to [0, Q).
func fromCentered(a int32) uint32 {
	if a < 0 {
		a += Q
	}
	return uint32(a)
}
