// Package experiment implements the configuration core: the schema of
// recognized experiment parameters, numeric validation, conflict resolution,
// and the assembler that turns raw user overrides into one validated
// configuration ready for the simulation backend.
package experiment

import "github.com/aristath/qlab/internal/noise"

// State families
const (
	StateGHZ     = "GHZ"
	StateW       = "W"
	StateCluster = "CLUSTER"
)

// Noise families, aliased from the catalog so tokens stay in one place.
const (
	NoiseDepolarizing      = noise.FamilyDepolarizing
	NoisePhaseFlip         = noise.FamilyPhaseFlip
	NoiseAmplitudeDamping  = noise.FamilyAmplitudeDamping
	NoisePhaseDamping      = noise.FamilyPhaseDamping
	NoiseThermalRelaxation = noise.FamilyThermalRelaxation
	NoiseBitFlip           = noise.FamilyBitFlip
)

// Simulation modes
const (
	SimModeQASM    = "qasm"    // Sampled measurement counts
	SimModeDensity = "density" // Exact density matrix
)

// Visualization intents. Rendering is external; the resolver only reads these
// to detect incompatible combinations.
const (
	VizNone       = "none"
	VizPlot       = "plot"
	VizHypergraph = "hypergraph"
)

// ValidStateTypes lists the canonical state family tokens.
var ValidStateTypes = []string{StateGHZ, StateW, StateCluster}

// ValidNoiseTypes lists the canonical noise family tokens.
var ValidNoiseTypes = []string{
	NoiseDepolarizing,
	NoisePhaseFlip,
	NoiseAmplitudeDamping,
	NoisePhaseDamping,
	NoiseThermalRelaxation,
	NoiseBitFlip,
}

// NoiseShortcuts maps single-letter input tokens to canonical noise families.
var NoiseShortcuts = map[string]string{
	"d": NoiseDepolarizing,
	"p": NoisePhaseFlip,
	"a": NoiseAmplitudeDamping,
	"z": NoisePhaseDamping,
	"t": NoiseThermalRelaxation,
	"b": NoiseBitFlip,
}

// Default values applied before user overrides.
const (
	DefaultNumQubits = 3
	DefaultStateType = StateGHZ
	DefaultNoiseType = NoiseDepolarizing
	DefaultShots     = 1024
	DefaultSimMode   = SimModeQASM

	// DefaultErrorRate is used when a noise family needs an error rate and the
	// configuration does not carry one.
	DefaultErrorRate = 0.1

	// Default phase-flip split when no custom probabilities are supplied.
	DefaultZProb = 0.5
	DefaultIProb = 0.5

	// Default relaxation times in seconds (100µs / 80µs).
	DefaultT1 = 100e-6
	DefaultT2 = 80e-6
)

// Config is the central experiment configuration value. It is constructed
// fresh per run from defaults merged with user overrides, mutated only during
// the resolver pass, and treated as immutable once handed to the backend.
type Config struct {
	NumQubits     int
	StateType     string
	NoiseType     string
	NoiseEnabled  bool
	Shots         int
	SimMode       string
	Visualization string

	// Optional channel parameters. Nil means "use the family default".
	ErrorRate *float64
	ZProb     *float64
	IProb     *float64
	T1        *float64
	T2        *float64

	// State-family-specific parameters (e.g. lattice topology for CLUSTER).
	CustomParams map[string]any
}

// Defaults returns a configuration populated with schema defaults.
func Defaults() *Config {
	return &Config{
		NumQubits:     DefaultNumQubits,
		StateType:     DefaultStateType,
		NoiseType:     DefaultNoiseType,
		NoiseEnabled:  true,
		Shots:         DefaultShots,
		SimMode:       DefaultSimMode,
		Visualization: VizNone,
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.ErrorRate = clonePtr(c.ErrorRate)
	out.ZProb = clonePtr(c.ZProb)
	out.IProb = clonePtr(c.IProb)
	out.T1 = clonePtr(c.T1)
	out.T2 = clonePtr(c.T2)
	if c.CustomParams != nil {
		out.CustomParams = make(map[string]any, len(c.CustomParams))
		for k, v := range c.CustomParams {
			out.CustomParams[k] = v
		}
	}
	return &out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func validState(token string) bool {
	for _, s := range ValidStateTypes {
		if s == token {
			return true
		}
	}
	return false
}

func validNoise(token string) bool {
	for _, n := range ValidNoiseTypes {
		if n == token {
			return true
		}
	}
	return false
}
