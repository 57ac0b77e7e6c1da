// Command blocksim times Dilithium3 keygen/sign/verify and models how
// many signed transactions fit a fixed-capacity block. Transaction
// sizes follow the block model: a non-crypto base, a signature and
// either a 32-byte address or the full public key. Signature bytes use
// a configurable modeling constant; the exact wire length of a packed
// signature is reported alongside so the two are never conflated.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"Dilithium-Signature/dilithium"
	"Dilithium-Signature/drbg"
)

type phaseStats struct {
	MinUS    int64   `json:"min_us"`
	MedianUS int64   `json:"median_us"`
	MeanUS   float64 `json:"mean_us"`
}

type report struct {
	BlockBytes      int        `json:"block_bytes"`
	TxCount         int        `json:"tx_count"`
	PerTxBytes      int        `json:"per_tx_bytes"`
	SigModelBytes   int        `json:"sig_model_bytes"`
	SigWireBytes    int        `json:"sig_wire_bytes"`
	MerkleRoot      string     `json:"merkle_root"`
	Keygen          phaseStats `json:"keygen"`
	Sign            phaseStats `json:"sign"`
	Verify          phaseStats `json:"verify"`
	TotalSignUS     int64      `json:"total_sign_us"`
	TotalVerifyUS   int64      `json:"total_verify_us"`
	Runs            int        `json:"runs"`
	DeterministicOK bool       `json:"deterministic"`
}

func main() {
	blockBytes := flag.Int("block-bytes", 1000000, "block capacity in bytes")
	baseBytes := flag.Int("base-bytes", 186, "non-crypto bytes per transaction")
	sigBytes := flag.Int("sig-bytes", 2973, "modeled signature bytes per transaction")
	addrBytes := flag.Int("addr-bytes", 32, "address bytes per transaction")
	fullPK := flag.Bool("full-pk", false, "embed the full public key instead of an address")
	forceTx := flag.Int("force-tx", 320, "fix the block to N transactions (0 = auto-pack)")
	msgBytes := flag.Int("msg-bytes", 64, "signed payload length")
	runs := flag.Int("runs", 5, "timing repetitions per phase")
	seedHex := flag.String("seed", "", "32-byte hex seed for deterministic runs")
	jsonOut := flag.String("json", "", "write the report as JSON to this path")
	htmlOut := flag.String("html", "", "write an HTML timing chart to this path")
	flag.Parse()

	if *msgBytes < 8 {
		log.Fatal("blocksim: -msg-bytes must be at least 8 (nonce suffix)")
	}
	if *runs < 1 {
		log.Fatal("blocksim: -runs must be positive")
	}

	rng, err := makeSource(*seedHex)
	if err != nil {
		log.Fatalf("blocksim: %v", err)
	}

	perTx := *baseBytes + *sigBytes + *addrBytes
	if *fullPK {
		perTx = *baseBytes + *sigBytes + dilithium.PublicKeySize
	}
	txCount := *blockBytes / perTx
	if *forceTx > 0 && *forceTx < txCount {
		txCount = *forceTx
	}
	total := txCount * perTx
	if total > *blockBytes {
		log.Fatalf("blocksim: block %d B exceeds the %d B cap", total, *blockBytes)
	}

	// One keypair signs every transaction in the modeled block.
	var pk *dilithium.PublicKey
	var sk *dilithium.SecretKey
	keygenTimes := make([]time.Duration, *runs)
	for i := range keygenTimes {
		start := time.Now()
		pk, sk, err = dilithium.KeyGen(rng)
		keygenTimes[i] = time.Since(start)
		if err != nil {
			log.Fatalf("blocksim: keygen: %v", err)
		}
	}

	base, err := rng.NextBytes(*msgBytes - 8)
	if err != nil {
		log.Fatalf("blocksim: payload randomness: %v", err)
	}
	msg := append(append([]byte{}, base...), txNonce(0)...)

	var sig []byte
	signTimes := make([]time.Duration, *runs)
	for i := range signTimes {
		start := time.Now()
		sig, err = dilithium.Sign(sk, msg)
		signTimes[i] = time.Since(start)
		if err != nil {
			log.Fatalf("blocksim: sign: %v", err)
		}
	}

	verifyTimes := make([]time.Duration, *runs)
	for i := range verifyTimes {
		start := time.Now()
		ok := dilithium.Verify(pk, msg, sig)
		verifyTimes[i] = time.Since(start)
		if !ok {
			log.Fatal("blocksim: signature failed verification")
		}
	}

	// Deterministic signing means a repeat produces identical bytes.
	sig2, err := dilithium.Sign(sk, msg)
	if err != nil {
		log.Fatalf("blocksim: sign: %v", err)
	}

	// Merkle root over the modeled block, one txid per transaction.
	txids := make([][]byte, txCount)
	for i := 0; i < txCount; i++ {
		serialized := append(append(append([]byte{}, base...), txNonce(uint64(i))...), sig...)
		if pad := perTx - len(serialized); pad > 0 {
			serialized = append(serialized, make([]byte, pad)...)
		}
		txids[i] = sha256d(serialized)
	}
	root := merkleRoot(txids)

	rep := report{
		BlockBytes:      total,
		TxCount:         txCount,
		PerTxBytes:      perTx,
		SigModelBytes:   *sigBytes,
		SigWireBytes:    dilithium.SignatureSize,
		MerkleRoot:      hex.EncodeToString(root),
		Keygen:          stats(keygenTimes),
		Sign:            stats(signTimes),
		Verify:          stats(verifyTimes),
		TotalSignUS:     stats(signTimes).MedianUS * int64(txCount),
		TotalVerifyUS:   stats(verifyTimes).MedianUS * int64(txCount),
		Runs:            *runs,
		DeterministicOK: string(sig) == string(sig2),
	}

	printReport(rep)
	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, rep); err != nil {
			log.Fatalf("blocksim: %v", err)
		}
	}
	if *htmlOut != "" {
		if err := writeChart(*htmlOut, rep); err != nil {
			log.Fatalf("blocksim: %v", err)
		}
	}
}

func makeSource(seedHex string) (dilithium.RandomSource, error) {
	if seedHex == "" {
		return drbg.SystemSource{}, nil
	}
	raw, err := hex.DecodeString(seedHex)
	if err != nil || len(raw) != drbg.SeedSize {
		return nil, fmt.Errorf("bad -seed: want %d hex bytes", drbg.SeedSize)
	}
	var entropy [drbg.SeedSize]byte
	copy(entropy[:], raw)
	return drbg.NewAESDRBG(entropy, [drbg.NonceSize]byte{}), nil
}

func txNonce(i uint64) []byte {
	nonce := make([]byte, 8)
	for j := 0; j < 8; j++ {
		nonce[j] = byte(i >> (8 * j))
	}
	return nonce
}

func sha256d(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// merkleRoot pairs txids level by level, duplicating the last entry of
// an odd level.
func merkleRoot(txids [][]byte) []byte {
	if len(txids) == 0 {
		return make([]byte, 32)
	}
	level := txids
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, sha256d(append(append([]byte{}, level[i]...), level[i+1]...)))
		}
		level = next
	}
	return level[0]
}

func stats(times []time.Duration) phaseStats {
	us := make([]int64, len(times))
	var sum int64
	for i, d := range times {
		us[i] = d.Microseconds()
		sum += us[i]
	}
	sort.Slice(us, func(i, j int) bool { return us[i] < us[j] })
	return phaseStats{
		MinUS:    us[0],
		MedianUS: us[len(us)/2],
		MeanUS:   float64(sum) / float64(len(us)),
	}
}

func printReport(r report) {
	fmt.Println("-------------------------------------------------------------")
	fmt.Printf("Block size: %d bytes with %d tx (cap OK)\n", r.BlockBytes, r.TxCount)
	fmt.Printf("Per-tx size: %d bytes (model sig %d B, wire sig %d B)\n", r.PerTxBytes, r.SigModelBytes, r.SigWireBytes)
	fmt.Printf("Merkle root: %s\n", r.MerkleRoot)
	fmt.Println("-------------------------------------------------------------")
	fmt.Printf("Keygen (median of %d): %d us\n", r.Runs, r.Keygen.MedianUS)
	fmt.Printf("Sign   (median of %d): %d us\n", r.Runs, r.Sign.MedianUS)
	fmt.Printf("Verify (median of %d): %d us\n", r.Runs, r.Verify.MedianUS)
	fmt.Printf("Total block signing time (%d tx): %d us\n", r.TxCount, r.TotalSignUS)
	fmt.Printf("Total block verification time (%d tx): %d us\n", r.TxCount, r.TotalVerifyUS)
	if !r.DeterministicOK {
		fmt.Println("WARNING: repeated signatures differ; deterministic path broken")
	}
}

func writeJSON(path string, r report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeChart(path string, r report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Dilithium3 block simulation",
			Subtitle: fmt.Sprintf("%d tx, %d B block", r.TxCount, r.BlockBytes),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "microseconds"}),
	)
	bar.SetXAxis([]string{"keygen", "sign", "verify"}).
		AddSeries("median", []opts.BarData{
			{Value: r.Keygen.MedianUS},
			{Value: r.Sign.MedianUS},
			{Value: r.Verify.MedianUS},
		}).
		AddSeries("mean", []opts.BarData{
			{Value: r.Keygen.MeanUS},
			{Value: r.Sign.MeanUS},
			{Value: r.Verify.MeanUS},
		})
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
