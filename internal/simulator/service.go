package simulator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aristath/qlab/internal/circuit"
	"github.com/aristath/qlab/internal/experiment"
	"github.com/aristath/qlab/internal/noise"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"
)

// Outcome is the result of one experiment run. Counts is populated in qasm
// mode, the density pair in density mode.
type Outcome struct {
	Counts      map[string]int     `json:"counts,omitempty"`
	DensityReal [][]float64        `json:"density_real,omitempty"`
	DensityImag [][]float64        `json:"density_imag,omitempty"`
	GateSet     []string           `json:"gate_set"`
	Channel     *noise.ChannelSpec `json:"channel,omitempty"`
}

// Service runs validated experiment configurations. It consults the noise
// catalog at execution time to build and attach the configured channel.
type Service struct {
	catalog          *noise.Catalog
	maxDensityQubits int
	src              rand.Source
	log              zerolog.Logger
}

// NewService creates a simulation service. maxDensityQubits bounds the
// density-matrix path, whose memory grows as 4^n.
func NewService(catalog *noise.Catalog, maxDensityQubits int, log zerolog.Logger) *Service {
	return &Service{
		catalog:          catalog,
		maxDensityQubits: maxDensityQubits,
		src:              rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15),
		log:              log.With().Str("component", "simulator").Logger(),
	}
}

// SetSource replaces the sampling randomness source. Used by tests for
// reproducible counts.
func (s *Service) SetSource(src rand.Source) {
	s.src = src
}

// Run executes the configuration end to end: build the preparation circuit,
// attach the noise channel when enabled, evolve, and either sample counts
// (qasm mode) or return the exact density matrix (density mode).
func (s *Service) Run(cfg *experiment.Config) (*Outcome, error) {
	qc, err := circuit.Build(cfg.StateType, cfg.NumQubits, cfg.CustomParams)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{GateSet: qc.GateNames()}

	var em *noise.ErrorModel
	if cfg.NoiseEnabled {
		em = noise.NewErrorModel()
		spec, err := s.catalog.Apply(em, cfg.NoiseType, outcome.GateSet, cfg.ChannelParams())
		if err != nil {
			return nil, err
		}
		outcome.Channel = &spec
	}

	// Channels force the mixed-state path; a skipped attachment does not.
	needDensity := cfg.SimMode == experiment.SimModeDensity || (em != nil && !em.Empty())
	if needDensity && cfg.NumQubits > s.maxDensityQubits {
		return nil, fmt.Errorf("density simulation limited to %d qubits, got %d", s.maxDensityQubits, cfg.NumQubits)
	}

	start := time.Now()

	if needDensity {
		rho, err := evolveDensity(qc, em)
		if err != nil {
			return nil, err
		}
		if cfg.SimMode == experiment.SimModeQASM {
			outcome.Counts = s.sample(diagonal(rho), cfg.Shots, cfg.NumQubits)
		} else {
			outcome.DensityReal, outcome.DensityImag = splitDensity(rho)
		}
	} else {
		amps, err := evolveVector(qc)
		if err != nil {
			return nil, err
		}
		if cfg.SimMode == experiment.SimModeQASM {
			outcome.Counts = s.sample(probabilities(amps), cfg.Shots, cfg.NumQubits)
		} else {
			outcome.DensityReal, outcome.DensityImag = splitDensity(outer(amps))
		}
	}

	s.log.Info().
		Int("num_qubits", cfg.NumQubits).
		Str("state_type", cfg.StateType).
		Str("sim_mode", cfg.SimMode).
		Bool("noise_enabled", cfg.NoiseEnabled).
		Dur("elapsed", time.Since(start)).
		Msg("Experiment simulated")

	return outcome, nil
}

// sample draws shots outcomes from the measurement distribution.
func (s *Service) sample(probs []float64, shots, numQubits int) map[string]int {
	dist := distuv.NewCategorical(probs, s.src)
	counts := make(map[string]int)
	for i := 0; i < shots; i++ {
		idx := int(dist.Rand())
		counts[bitString(idx, numQubits)]++
	}
	return counts
}

func splitDensity(rho [][]complex128) (re, im [][]float64) {
	re = make([][]float64, len(rho))
	im = make([][]float64, len(rho))
	for i, row := range rho {
		re[i] = make([]float64, len(row))
		im[i] = make([]float64, len(row))
		for j, v := range row {
			re[i][j] = real(v)
			im[i][j] = imag(v)
		}
	}
	return re, im
}
