// Command bloomstat builds a Bloom filter from a list of keys and measures its
// false-positive rate.
//
// Keys are read one per line; files ending in .gz are decompressed. Probe keys
// that also appear in the key list are skipped. Defaults for -p, -hasher and
// -seed come from BLOOMSTAT_P, BLOOMSTAT_HASHER and BLOOMSTAT_SEED, which may
// be set in a .env file in the working directory.
package main

import (
	"bufio"
	"compress/gzip"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	bloom "github.com/spreatty/bloom-filter"
)

var errFalseNegative = errors.New("false negative")

type config struct {
	keys         string
	probes       string
	randomProbes int
	n            int
	p            float64
	hasher       string
	seed         uint64
	seeded       bool
	verbose      bool
}

func main() {
	// A missing .env is fine; the process environment is used as is.
	_ = godotenv.Load()

	os.Exit(realMain(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// realMain returns the process exit code so that deferred calls run before
// main exits.
func realMain(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log, err := newLogger(cfg.verbose)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, stdout, log); err != nil {
		log.Error("bloomstat failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func parseFlags(args []string, getenv func(string) string) (config, error) {
	var cfg config

	p := bloom.DefaultFalsePositiveRate
	if v := getenv("BLOOMSTAT_P"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("BLOOMSTAT_P: %w", err)
		}
		p = f
	}
	hasher := "sip"
	if v := getenv("BLOOMSTAT_HASHER"); v != "" {
		hasher = v
	}
	seed := getenv("BLOOMSTAT_SEED")

	fs := flag.NewFlagSet("bloomstat", flag.ContinueOnError)
	fs.StringVar(&cfg.keys, "keys", "", "file of keys to insert, one per line (required)")
	fs.StringVar(&cfg.probes, "probes", "", "file of keys to test")
	fs.IntVar(&cfg.randomProbes, "random-probes", 100000, "number of random keys to test when -probes is not set")
	fs.IntVar(&cfg.n, "n", 0, "expected number of keys (default: number of keys read)")
	fs.Float64Var(&cfg.p, "p", p, "target false-positive probability")
	fs.StringVar(&cfg.hasher, "hasher", hasher, "key hasher: sip, xx or murmur3")
	fs.StringVar(&seed, "seed", seed, "seed for a reproducible hash family")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.keys == "" {
		return cfg, errors.New("-keys is required")
	}
	if seed != "" {
		s, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("seed: %w", err)
		}
		cfg.seed, cfg.seeded = s, true
	}
	if _, err := hasherByName(cfg.hasher); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func hasherByName(name string) (bloom.Hasher, error) {
	switch strings.ToLower(name) {
	case "sip", "siphash":
		return bloom.SipHash, nil
	case "xx", "xxhash":
		return bloom.XXHash, nil
	case "murmur3", "murmur":
		return bloom.Murmur3, nil
	}
	return nil, fmt.Errorf("unknown hasher %q", name)
}

func run(cfg config, w io.Writer, log *zap.Logger) error {
	keys, err := readKeys(cfg.keys)
	if err != nil {
		return err
	}
	n := cfg.n
	if n <= 0 {
		n = len(keys)
	}

	hasher, err := hasherByName(cfg.hasher)
	if err != nil {
		return err
	}
	opts := []bloom.Option{bloom.WithHasher(hasher), bloom.WithLogger(log)}
	if cfg.seeded {
		opts = append(opts, bloom.WithSeed(cfg.seed))
	}

	f, err := bloom.NewWithRate(n, cfg.p, opts...)
	if err != nil {
		return err
	}

	inserted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		f.Add(k)
		inserted[k] = struct{}{}
	}
	for _, k := range keys {
		if !f.Has(k) {
			return fmt.Errorf("%w for %q", errFalseNegative, k)
		}
	}

	var probes []string
	if cfg.probes != "" {
		if probes, err = readKeys(cfg.probes); err != nil {
			return err
		}
	} else {
		if probes, err = randomKeys(cfg.randomProbes); err != nil {
			return err
		}
	}

	var tested, fp int
	for _, k := range probes {
		if _, ok := inserted[k]; ok {
			continue
		}
		tested++
		if f.Has(k) {
			fp++
		}
	}

	hashes, nbits := f.Stats()
	fmt.Fprintf(w, "keys:        %d (expected %d)\n", len(inserted), n)
	fmt.Fprintf(w, "bits:        %d (%.2f per key)\n", nbits, float64(nbits)/float64(max(n, 1)))
	fmt.Fprintf(w, "hashes:      %d (%s)\n", hashes, cfg.hasher)
	fmt.Fprintf(w, "fill:        %.4f\n", f.FillRatio())
	fmt.Fprintf(w, "estimated n: %d\n", f.Size())
	fmt.Fprintf(w, "target p:    %f\n", cfg.p)
	fmt.Fprintf(w, "theory p:    %f\n", f.EstimatedFalsePositiveRate())
	if tested == 0 {
		fmt.Fprintln(w, "observed p:  n/a (no probes)")
		return nil
	}
	rate := float64(fp) / float64(tested)
	fmt.Fprintf(w, "observed p:  %f (%d/%d)\n", rate, fp, tested)

	if rate > 3*cfg.p {
		log.Warn("observed false-positive rate exceeds target",
			zap.Float64("observed", rate),
			zap.Float64("target", cfg.p),
		)
	}
	return nil
}

func readKeys(name string) ([]string, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(name, ".gz") {
		rc, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defer rc.Close()
		r = rc
	}

	var keys []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := s.Text(); line != "" {
			keys = append(keys, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return keys, nil
}

func randomKeys(n int) ([]string, error) {
	keys := make([]string, n)
	var p [10]byte
	for i := range keys {
		if _, err := rand.Read(p[:]); err != nil {
			return nil, err
		}
		keys[i] = hex.EncodeToString(p[:])
	}
	return keys, nil
}
