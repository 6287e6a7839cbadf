package experiment

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/qlab/internal/noise"
	"github.com/rs/zerolog"
)

// Result is the assembler's output: a validated configuration plus the
// resolver decisions taken while producing it.
type Result struct {
	Config    *Config
	Decisions []Record
}

// Assembler composes schema defaults, override normalization, the
// compatibility resolver, and the numeric validator into a single entry
// point. It is the only surface the front end calls.
type Assembler struct {
	resolver *Resolver
	log      zerolog.Logger
}

// NewAssembler creates an assembler backed by the noise catalog's arity
// metadata.
func NewAssembler(meta NoiseMeta, log zerolog.Logger) *Assembler {
	return &Assembler{
		resolver: NewResolver(meta, log),
		log:      log.With().Str("component", "assembler").Logger(),
	}
}

// Assemble merges raw overrides onto schema defaults, resolves conflicts via
// src, and validates the result. It fails with a ConstraintViolation or
// Unknown*FamilyError on invalid input, and with ErrResolutionAborted when
// the source cancels; the caller restarts parameter collection in that case.
func (a *Assembler) Assemble(raw map[string]any, src DecisionSource) (*Result, error) {
	cfg := Defaults()

	if err := applyOverrides(cfg, raw); err != nil {
		a.logFailure(err)
		return nil, err
	}

	records, err := a.resolver.Resolve(cfg, src)
	if err != nil {
		if errors.Is(err, ErrResolutionAborted) {
			a.log.Info().Msg("Resolution aborted, caller should restart parameter collection")
		}
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		a.logFailure(err)
		return nil, err
	}

	a.log.Debug().
		Int("num_qubits", cfg.NumQubits).
		Str("state_type", cfg.StateType).
		Str("noise_type", cfg.NoiseType).
		Bool("noise_enabled", cfg.NoiseEnabled).
		Str("sim_mode", cfg.SimMode).
		Msg("Configuration assembled")

	return &Result{Config: cfg, Decisions: records}, nil
}

func (a *Assembler) logFailure(err error) {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		a.log.Warn().
			Str("field", cv.Field).
			Str("rule", cv.Rule).
			Msg("Constraint violation")
		return
	}
	a.log.Warn().Err(err).Msg("Configuration rejected")
}

// applyOverrides merges a raw key/value override set onto the defaults,
// normalizing case-insensitive enum tokens and shortcut forms.
func applyOverrides(cfg *Config, raw map[string]any) error {
	for key, value := range raw {
		var err error
		switch key {
		case "num_qubits":
			cfg.NumQubits, err = toInt(key, value)
		case "state_type":
			var s string
			if s, err = toString(key, value); err == nil {
				cfg.StateType = strings.ToUpper(strings.TrimSpace(s))
			}
		case "noise_type":
			var s string
			if s, err = toString(key, value); err == nil {
				cfg.NoiseType = normalizeNoiseToken(s)
			}
		case "noise_enabled":
			cfg.NoiseEnabled, err = toBool(key, value)
		case "shots":
			cfg.Shots, err = toInt(key, value)
		case "sim_mode":
			var s string
			if s, err = toString(key, value); err == nil {
				cfg.SimMode = normalizeSimMode(s)
			}
		case "visualization_type":
			var s string
			if s, err = toString(key, value); err == nil {
				cfg.Visualization = normalizeVizToken(s)
			}
		case "error_rate":
			cfg.ErrorRate, err = toFloatPtr(key, value)
		case "z_prob":
			cfg.ZProb, err = toFloatPtr(key, value)
		case "i_prob":
			cfg.IProb, err = toFloatPtr(key, value)
		case "t1":
			cfg.T1, err = toFloatPtr(key, value)
		case "t2":
			cfg.T2, err = toFloatPtr(key, value)
		case "custom_params":
			m, ok := value.(map[string]any)
			if !ok && value != nil {
				err = &ConstraintViolation{Field: key, Rule: "must be an object"}
			} else {
				cfg.CustomParams = m
			}
		default:
			err = &ConstraintViolation{Field: key, Rule: "unrecognized parameter"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// normalizeNoiseToken resolves shortcuts and case to the canonical family
// token. Unknown tokens pass through uppercased for the validator to reject.
func normalizeNoiseToken(s string) string {
	token := strings.ToLower(strings.TrimSpace(s))
	if family, ok := NoiseShortcuts[token]; ok {
		return family
	}
	return strings.ToUpper(token)
}

func normalizeSimMode(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", SimModeQASM:
		return SimModeQASM
	case "d", SimModeDensity:
		return SimModeDensity
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

func normalizeVizToken(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", VizPlot:
		return VizPlot
	case "h", VizHypergraph:
		return VizHypergraph
	case "n", VizNone, "":
		return VizNone
	default:
		return strings.ToLower(strings.TrimSpace(s))
	}
}

func toInt(field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, &ConstraintViolation{Field: field, Rule: "must be an integer"}
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, &ConstraintViolation{Field: field, Rule: "must be an integer"}
		}
		return n, nil
	default:
		return 0, &ConstraintViolation{Field: field, Rule: "must be an integer"}
	}
}

func toFloatPtr(field string, value any) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case float64:
		return &v, nil
	case int:
		f := float64(v)
		return &f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, &ConstraintViolation{Field: field, Rule: "must be a number"}
		}
		return &f, nil
	default:
		return nil, &ConstraintViolation{Field: field, Rule: "must be a number"}
	}
}

func toBool(field string, value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "t", "true", "1":
			return true, nil
		case "n", "no", "f", "false", "0":
			return false, nil
		}
	}
	return false, &ConstraintViolation{Field: field, Rule: "must be a boolean"}
}

func toString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &ConstraintViolation{Field: field, Rule: "must be a string"}
	}
	return s, nil
}

// ChannelParams resolves the numeric channel parameters for the active noise
// family, falling back to schema defaults where the configuration carries
// none. Only meaningful after validation.
func (c *Config) ChannelParams() noise.Params {
	p := noise.Params{
		ErrorRate: DefaultErrorRate,
		ZProb:     DefaultZProb,
		IProb:     DefaultIProb,
		T1:        DefaultT1,
		T2:        DefaultT2,
	}
	if c.ErrorRate != nil {
		p.ErrorRate = *c.ErrorRate
	}
	if c.ZProb != nil && c.IProb != nil {
		p.ZProb = *c.ZProb
		p.IProb = *c.IProb
	}
	if c.T1 != nil && c.T2 != nil {
		p.T1 = *c.T1
		p.T2 = *c.T2
	}
	return p
}
