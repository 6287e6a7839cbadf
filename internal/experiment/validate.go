package experiment

import (
	"math"
)

// simplexTolerance is the permitted deviation of z_prob + i_prob from 1.
const simplexTolerance = 1e-10

// Validate checks all numeric and cross-field invariants of a candidate
// configuration. It is pure: the config is returned to the caller unchanged,
// and the first violated rule is reported as a ConstraintViolation (or an
// Unknown*FamilyError for unrecognized enum tokens).
func Validate(cfg *Config) error {
	if cfg.NumQubits < 1 {
		return &ConstraintViolation{Field: "num_qubits", Rule: "must be at least 1"}
	}

	if !validState(cfg.StateType) {
		return &UnknownStateFamilyError{Token: cfg.StateType}
	}

	if !validNoise(cfg.NoiseType) {
		return &UnknownNoiseFamilyError{Token: cfg.NoiseType}
	}

	if cfg.SimMode != SimModeQASM && cfg.SimMode != SimModeDensity {
		return &ConstraintViolation{Field: "sim_mode", Rule: "must be one of [qasm, density]"}
	}

	switch cfg.Visualization {
	case VizNone, VizPlot, VizHypergraph:
	default:
		return &ConstraintViolation{Field: "visualization_type", Rule: "must be one of [none, plot, hypergraph]"}
	}

	if cfg.Shots < 1 {
		return &ConstraintViolation{Field: "shots", Rule: "must be at least 1"}
	}

	if err := validateCustomParams(cfg); err != nil {
		return err
	}

	if cfg.ErrorRate != nil && (*cfg.ErrorRate < 0 || *cfg.ErrorRate > 1) {
		return &ConstraintViolation{Field: "error_rate", Rule: "must be between 0 and 1"}
	}

	if err := validatePhaseFlipProbs(cfg.ZProb, cfg.IProb); err != nil {
		return err
	}

	return validateRelaxationTimes(cfg.T1, cfg.T2)
}

// validatePhaseFlipProbs enforces the probability simplex for the z/i pair:
// both present, both in [0,1], sum equal to 1 within tolerance.
func validatePhaseFlipProbs(zProb, iProb *float64) error {
	if zProb == nil && iProb == nil {
		return nil
	}
	if zProb == nil || iProb == nil {
		return &ConstraintViolation{Field: "z_prob/i_prob", Rule: "both must be provided together"}
	}
	if *zProb < 0 || *zProb > 1 {
		return &ConstraintViolation{Field: "z_prob", Rule: "must be between 0 and 1"}
	}
	if *iProb < 0 || *iProb > 1 {
		return &ConstraintViolation{Field: "i_prob", Rule: "must be between 0 and 1"}
	}
	if math.Abs(*zProb+*iProb-1) > simplexTolerance {
		return &ConstraintViolation{Field: "z_prob/i_prob", Rule: "probabilities must sum to 1"}
	}
	return nil
}

// validateRelaxationTimes enforces that relaxation times co-occur, are
// strictly positive, and satisfy t2 <= t1.
func validateRelaxationTimes(t1, t2 *float64) error {
	if t1 == nil && t2 == nil {
		return nil
	}
	if t1 == nil || t2 == nil {
		return &ConstraintViolation{Field: "t1/t2", Rule: "both must be provided together"}
	}
	if *t1 <= 0 {
		return &ConstraintViolation{Field: "t1", Rule: "must be strictly positive"}
	}
	if *t2 <= 0 {
		return &ConstraintViolation{Field: "t2", Rule: "must be strictly positive"}
	}
	if *t2 > *t1 {
		return &ConstraintViolation{Field: "t1/t2", Rule: "t2 must not exceed t1"}
	}
	return nil
}

// validateCustomParams checks state-family-specific parameters.
func validateCustomParams(cfg *Config) error {
	if cfg.CustomParams == nil {
		return nil
	}

	if angle, ok := cfg.CustomParams["angle"]; ok {
		v, ok := angle.(float64)
		if !ok {
			return &ConstraintViolation{Field: "custom_params.angle", Rule: "must be a number"}
		}
		if v < 0 || v > 2*math.Pi {
			return &ConstraintViolation{Field: "custom_params.angle", Rule: "must be between 0 and 2π radians"}
		}
	}

	if lattice, ok := cfg.CustomParams["lattice"]; ok {
		v, ok := lattice.(string)
		if !ok || (v != "1d" && v != "2d") {
			return &ConstraintViolation{Field: "custom_params.lattice", Rule: "must be one of [1d, 2d]"}
		}
	}

	return nil
}
