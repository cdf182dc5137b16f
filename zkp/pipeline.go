package zkp

import (
	"fmt"
	"time"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/rs/zerolog"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

// Phase is the pipeline's progress marker.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseSetupDone
	PhaseIndexDone
	PhaseProved
	PhaseVerified
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseSetupDone:
		return "setup-done"
	case PhaseIndexDone:
		return "index-done"
	case PhaseProved:
		return "proved"
	case PhaseVerified:
		return "verified"
	}
	return "unknown"
}

// Timings holds the wall-clock duration of each completed phase. Observability
// only; no influence on correctness.
type Timings struct {
	Setup  time.Duration
	Index  time.Duration
	Prove  time.Duration
	Verify time.Duration
}

// Pipeline sequences the four backend phases in strict order:
// Setup -> Index -> Prove -> Verify. A phase called out of order fails with
// that phase's error; no phase is skipped or retried. Each phase that needs
// randomness gets its own Rng, freshly seeded from hardware entropy, so no
// generator state ever crosses a phase boundary.
//
// A Pipeline is single-use and not safe for concurrent use. For many proofs
// from one key pair, use the package-level Prove/Verify with the keys from
// Keys.
type Pipeline struct {
	params  Params
	bounds  Bounds
	entropy hwrand.Source
	log     zerolog.Logger

	phase Phase
	srs   *SRS
	pk    *ProvingKey
	vk    *VerifyingKey
	proof plonk.Proof

	timings Timings
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEntropySource swaps the hardware entropy source, e.g. for a
// deterministic one in tests.
func WithEntropySource(src hwrand.Source) Option {
	return func(p *Pipeline) { p.entropy = src }
}

// WithLogger sets the pipeline logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// NewPipeline builds a pipeline for the relation params within the given SRS
// bounds. By default entropy comes from the CPU RDRAND instruction and the
// first phase fails if it is unavailable.
func NewPipeline(params Params, bounds Bounds, opts ...Option) *Pipeline {
	p := &Pipeline{
		params:  params,
		bounds:  bounds,
		entropy: hwrand.RdRand{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) freshRng() (*hwrand.Rng, error) {
	return hwrand.New(p.entropy)
}

// Setup runs the universal setup phase.
func (p *Pipeline) Setup() error {
	if p.phase != PhaseNotStarted {
		return fmt.Errorf("%w: setup called in phase %s", ErrSetupFailed, p.phase)
	}
	rng, err := p.freshRng()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetupFailed, err)
	}

	start := time.Now()
	srs, err := UniversalSetup(p.bounds, rng)
	if err != nil {
		return err
	}
	p.timings.Setup = time.Since(start)
	p.log.Info().Dur("took", p.timings.Setup).Msg("universal setup")

	p.srs = srs
	p.phase = PhaseSetupDone
	return nil
}

// Index derives the key pair from a placeholder circuit. The placeholder is
// discarded afterwards; the keys outlive all proofs.
func (p *Pipeline) Index() error {
	if p.phase != PhaseSetupDone {
		return fmt.Errorf("%w: index called in phase %s", ErrIndexingFailed, p.phase)
	}

	start := time.Now()
	pk, vk, err := Index(p.srs, p.params.Placeholder())
	if err != nil {
		return err
	}
	p.timings.Index = time.Since(start)
	p.log.Info().
		Dur("took", p.timings.Index).
		Int("constraints", pk.ccs.GetNbConstraints()).
		Msg("index")

	p.pk, p.vk = pk, vk
	p.phase = PhaseIndexDone
	return nil
}

// Prove builds a fresh fully-assigned circuit for (x, y) and proves it.
func (p *Pipeline) Prove(x, y fr.Element) error {
	if p.phase != PhaseIndexDone {
		return fmt.Errorf("%w: prove called in phase %s", ErrProvingFailed, p.phase)
	}
	rng, err := p.freshRng()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProvingFailed, err)
	}

	start := time.Now()
	proof, err := Prove(p.pk, p.params.Assign(x, y), rng)
	if err != nil {
		return err
	}
	p.timings.Prove = time.Since(start)
	p.log.Info().Dur("took", p.timings.Prove).Msg("prove")

	p.proof = proof
	p.phase = PhaseProved
	return nil
}

// Verify checks the pipeline's proof against the public input y. A false
// result completes the phase; it is not a failure.
func (p *Pipeline) Verify(y fr.Element) (bool, error) {
	if p.phase != PhaseProved {
		return false, fmt.Errorf("%w: verify called in phase %s", ErrVerificationFailed, p.phase)
	}
	rng, err := p.freshRng()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	start := time.Now()
	ok, err := Verify(p.vk, []fr.Element{y}, p.proof, rng)
	if err != nil {
		return false, err
	}
	p.timings.Verify = time.Since(start)
	p.log.Info().Dur("took", p.timings.Verify).Bool("valid", ok).Msg("verify")

	p.phase = PhaseVerified
	return ok, nil
}

// Run executes all four phases for the witness x and public input y.
func (p *Pipeline) Run(x, y fr.Element) (bool, error) {
	if err := p.Setup(); err != nil {
		return false, err
	}
	if err := p.Index(); err != nil {
		return false, err
	}
	if err := p.Prove(x, y); err != nil {
		return false, err
	}
	return p.Verify(y)
}

// Phase returns the current phase.
func (p *Pipeline) Phase() Phase { return p.phase }

// Timings returns the recorded phase durations.
func (p *Pipeline) Timings() Timings { return p.timings }

// Keys returns the key pair once indexing is done, nil before that.
func (p *Pipeline) Keys() (*ProvingKey, *VerifyingKey) { return p.pk, p.vk }

// SRS returns the reference string once setup is done, nil before that.
func (p *Pipeline) SRS() *SRS { return p.srs }

// Proof returns the proof artifact once proving is done, nil before that.
func (p *Pipeline) Proof() plonk.Proof { return p.proof }

// ProofBytes serializes the proof artifact.
func (p *Pipeline) ProofBytes() ([]byte, error) {
	if p.proof == nil {
		return nil, fmt.Errorf("%w: no proof in phase %s", ErrProvingFailed, p.phase)
	}
	return MarshalProof(p.proof)
}
