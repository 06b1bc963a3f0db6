// Package id provides run identifiers for benchmark results and logs.
//
// Run ids are prefixed ULIDs (run_<ulid>):
//   - Lexicographic sortability: result files sort by start time
//   - Prefixed: easy to spot in logs and scrape labels
//   - Timestamped: the start time can be recovered from the id alone
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunID identifies one benchmark run
type RunID string

// RunPrefix tags every run id
const RunPrefix = "run"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: rand.Reader,
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRunID generates a new run ID
func NewRunID() RunID {
	return RunID(Default().GenerateWithPrefix(RunPrefix))
}

func (id RunID) String() string { return string(id) }

// ULID returns the ULID part of the run id
func (id RunID) ULID() (ulid.ULID, error) {
	raw, ok := strings.CutPrefix(string(id), RunPrefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("run id %q: missing %s_ prefix", string(id), RunPrefix)
	}
	return ulid.Parse(raw)
}

// Timestamp extracts the start time encoded in the run id
func (id RunID) Timestamp() (time.Time, error) {
	parsed, err := id.ULID()
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}

// IsValid checks if the run id is a prefixed ULID
func (id RunID) IsValid() bool {
	_, err := id.ULID()
	return err == nil
}
