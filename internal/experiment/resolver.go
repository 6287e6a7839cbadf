package experiment

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Conflict check identifiers, in pipeline order.
const (
	CheckSingleQubitNoise        = "single_qubit_noise"
	CheckHypergraphNoise         = "hypergraph_single_qubit_noise"
	CheckDensitySingleQubitNoise = "density_single_qubit_noise"
	CheckHypergraphNoNoise       = "hypergraph_density_no_noise"
)

// Choice is a resolution option offered for a conflict.
type Choice string

const (
	ChoiceProceed       Choice = "proceed"       // Keep the configuration as-is
	ChoiceSwitch        Choice = "switch"        // Switch to a multi-qubit-capable noise family
	ChoiceDisable       Choice = "disable"       // Disable noise entirely
	ChoiceEnable        Choice = "enable"        // Enable noise
	ChoiceVisualization Choice = "visualization" // Change visualization intent to plot
	ChoiceCancel        Choice = "cancel"        // Abort resolution, restart collection
)

// Conflict describes a detected incompatibility and the choices offered.
type Conflict struct {
	Check     string
	Message   string
	Choices   []Choice
	NoiseType string // Active noise family when the conflict was detected
}

// Decision is the answer a DecisionSource gives for a conflict. SwitchTo is
// consulted only when Choice == ChoiceSwitch; it accepts the shorthand tokens
// d/p/t or the spelled-out family names, and defaults to depolarizing when
// empty.
type Decision struct {
	Choice   Choice `json:"choice"`
	SwitchTo string `json:"switch_to,omitempty"`
}

// DecisionSource supplies resolutions for conflicts. The interactive front
// end implements this with prompts; non-interactive callers use ProceedSource
// or ScriptedSource.
type DecisionSource interface {
	Resolve(c Conflict) (Decision, error)
}

// ProceedSource accepts every conflict unchanged.
type ProceedSource struct{}

// Resolve always proceeds.
func (ProceedSource) Resolve(Conflict) (Decision, error) {
	return Decision{Choice: ChoiceProceed}, nil
}

// ScriptedSource resolves conflicts from a fixed map keyed by check name.
// Checks without an entry proceed unchanged.
type ScriptedSource map[string]Decision

// Resolve looks up the scripted decision for the conflict's check.
func (s ScriptedSource) Resolve(c Conflict) (Decision, error) {
	if d, ok := s[c.Check]; ok {
		return d, nil
	}
	return Decision{Choice: ChoiceProceed}, nil
}

// Record captures one resolver decision for downstream observability.
type Record struct {
	Check  string `json:"check"`
	Choice Choice `json:"choice"`
	Detail string `json:"detail,omitempty"`
}

// NoiseMeta exposes the noise catalog's arity metadata to the resolver.
type NoiseMeta interface {
	SingleQubitOnly(family string) bool
}

// switchEquivalents maps the replacement tokens offered on a "switch"
// resolution to canonical family names.
var switchEquivalents = map[string]string{
	"d":                  NoiseDepolarizing,
	"depolarizing":       NoiseDepolarizing,
	"p":                  NoisePhaseFlip,
	"phase_flip":         NoisePhaseFlip,
	"t":                  NoiseThermalRelaxation,
	"thermal_relaxation": NoiseThermalRelaxation,
}

// Resolver runs the fixed, ordered sequence of conflict checks over a
// candidate configuration. Checks may mutate the candidate in place; later
// checks re-read the mutated state, so ordering is load-bearing.
type Resolver struct {
	meta NoiseMeta
	log  zerolog.Logger
}

// NewResolver creates a resolver backed by the noise catalog's arity metadata.
func NewResolver(meta NoiseMeta, log zerolog.Logger) *Resolver {
	return &Resolver{
		meta: meta,
		log:  log.With().Str("component", "resolver").Logger(),
	}
}

type check struct {
	name string
	run  func(*Config, DecisionSource) (*Record, error)
}

// Resolve runs all checks in order. It returns the records of every triggered
// check, or ErrResolutionAborted when the source cancels. A conflict-free
// configuration passes through untouched with no records.
func (r *Resolver) Resolve(cfg *Config, src DecisionSource) ([]Record, error) {
	if src == nil {
		src = ProceedSource{}
	}

	checks := []check{
		{CheckSingleQubitNoise, r.checkSingleQubitNoise},
		{CheckHypergraphNoise, r.checkHypergraphNoise},
		{CheckDensitySingleQubitNoise, r.checkDensityNoise},
		{CheckHypergraphNoNoise, r.checkHypergraphNoNoise},
	}

	var records []Record
	for _, c := range checks {
		rec, err := c.run(cfg, src)
		if err != nil {
			return records, err
		}
		if rec == nil {
			continue
		}
		records = append(records, *rec)
		r.log.Info().
			Str("check", rec.Check).
			Str("choice", string(rec.Choice)).
			Str("detail", rec.Detail).
			Msg("Resolver decision")
	}

	return records, nil
}

// checkSingleQubitNoise handles a single-qubit-only noise family combined
// with a multi-qubit state.
func (r *Resolver) checkSingleQubitNoise(cfg *Config, src DecisionSource) (*Record, error) {
	if !r.meta.SingleQubitOnly(cfg.NoiseType) || cfg.NumQubits <= 1 {
		return nil, nil
	}

	conflict := Conflict{
		Check: CheckSingleQubitNoise,
		Message: fmt.Sprintf("%s noise applies only to single-qubit gates but the experiment uses %d qubits",
			cfg.NoiseType, cfg.NumQubits),
		Choices:   []Choice{ChoiceProceed, ChoiceSwitch, ChoiceCancel},
		NoiseType: cfg.NoiseType,
	}

	decision, err := src.Resolve(conflict)
	if err != nil {
		return nil, err
	}

	switch decision.Choice {
	case ChoiceProceed:
		return &Record{Check: conflict.Check, Choice: ChoiceProceed, Detail: "kept " + cfg.NoiseType}, nil
	case ChoiceSwitch:
		return r.switchNoise(cfg, conflict.Check, decision.SwitchTo)
	case ChoiceCancel:
		return nil, ErrResolutionAborted
	default:
		return nil, fmt.Errorf("unsupported resolution %q for %s", decision.Choice, conflict.Check)
	}
}

// checkHypergraphNoise handles hypergraph visualization with single-qubit
// noise on a multi-qubit state. Same choices as checkSingleQubitNoise plus
// switching the visualization intent instead of the noise family.
func (r *Resolver) checkHypergraphNoise(cfg *Config, src DecisionSource) (*Record, error) {
	if cfg.Visualization != VizHypergraph {
		return nil, nil
	}
	if !r.meta.SingleQubitOnly(cfg.NoiseType) || cfg.NumQubits <= 1 {
		return nil, nil
	}

	conflict := Conflict{
		Check: CheckHypergraphNoise,
		Message: fmt.Sprintf("hypergraph visualization needs multi-qubit correlations; %s noise targets single-qubit gates only",
			cfg.NoiseType),
		Choices:   []Choice{ChoiceProceed, ChoiceSwitch, ChoiceCancel, ChoiceVisualization},
		NoiseType: cfg.NoiseType,
	}

	decision, err := src.Resolve(conflict)
	if err != nil {
		return nil, err
	}

	switch decision.Choice {
	case ChoiceProceed:
		return &Record{Check: conflict.Check, Choice: ChoiceProceed, Detail: "kept " + cfg.NoiseType}, nil
	case ChoiceSwitch:
		return r.switchNoise(cfg, conflict.Check, decision.SwitchTo)
	case ChoiceVisualization:
		cfg.Visualization = VizPlot
		return &Record{Check: conflict.Check, Choice: ChoiceVisualization, Detail: "visualization switched to plot"}, nil
	case ChoiceCancel:
		return nil, ErrResolutionAborted
	default:
		return nil, fmt.Errorf("unsupported resolution %q for %s", decision.Choice, conflict.Check)
	}
}

// checkDensityNoise handles exact (density) simulation combined with enabled
// single-qubit noise.
func (r *Resolver) checkDensityNoise(cfg *Config, src DecisionSource) (*Record, error) {
	if cfg.SimMode != SimModeDensity || !cfg.NoiseEnabled {
		return nil, nil
	}
	if !r.meta.SingleQubitOnly(cfg.NoiseType) {
		return nil, nil
	}

	conflict := Conflict{
		Check: CheckDensitySingleQubitNoise,
		Message: fmt.Sprintf("density simulation with %s noise affects single-qubit gates only; multi-qubit decoherence will not appear",
			cfg.NoiseType),
		Choices:   []Choice{ChoiceProceed, ChoiceSwitch, ChoiceDisable, ChoiceCancel},
		NoiseType: cfg.NoiseType,
	}

	decision, err := src.Resolve(conflict)
	if err != nil {
		return nil, err
	}

	switch decision.Choice {
	case ChoiceProceed:
		return &Record{Check: conflict.Check, Choice: ChoiceProceed, Detail: "kept " + cfg.NoiseType}, nil
	case ChoiceSwitch:
		return r.switchNoise(cfg, conflict.Check, decision.SwitchTo)
	case ChoiceDisable:
		cfg.NoiseEnabled = false
		return &Record{Check: conflict.Check, Choice: ChoiceDisable, Detail: "noise disabled"}, nil
	case ChoiceCancel:
		return nil, ErrResolutionAborted
	default:
		return nil, fmt.Errorf("unsupported resolution %q for %s", decision.Choice, conflict.Check)
	}
}

// checkHypergraphNoNoise handles hypergraph visualization of a noiseless
// density run, which would show no correlations of interest.
func (r *Resolver) checkHypergraphNoNoise(cfg *Config, src DecisionSource) (*Record, error) {
	if cfg.Visualization != VizHypergraph || cfg.SimMode != SimModeDensity || cfg.NoiseEnabled {
		return nil, nil
	}

	conflict := Conflict{
		Check: CheckHypergraphNoNoise,
		Message: fmt.Sprintf("hypergraph visualization of a noiseless %s density matrix carries no decoherence structure",
			cfg.StateType),
		Choices:   []Choice{ChoiceProceed, ChoiceEnable, ChoiceVisualization},
		NoiseType: cfg.NoiseType,
	}

	decision, err := src.Resolve(conflict)
	if err != nil {
		return nil, err
	}

	switch decision.Choice {
	case ChoiceProceed:
		return &Record{Check: conflict.Check, Choice: ChoiceProceed, Detail: "kept noiseless density run"}, nil
	case ChoiceEnable:
		cfg.NoiseEnabled = true
		return &Record{Check: conflict.Check, Choice: ChoiceEnable, Detail: "noise enabled"}, nil
	case ChoiceVisualization:
		cfg.Visualization = VizPlot
		return &Record{Check: conflict.Check, Choice: ChoiceVisualization, Detail: "visualization switched to plot"}, nil
	default:
		return nil, fmt.Errorf("unsupported resolution %q for %s", decision.Choice, conflict.Check)
	}
}

// switchNoise replaces the active noise family with the multi-qubit-capable
// equivalent named by token.
func (r *Resolver) switchNoise(cfg *Config, checkName, token string) (*Record, error) {
	target := NoiseDepolarizing
	if token != "" {
		var ok bool
		target, ok = switchEquivalents[strings.ToLower(token)]
		if !ok {
			return nil, &UnknownNoiseFamilyError{Token: token}
		}
	}

	cfg.NoiseType = target
	return &Record{Check: checkName, Choice: ChoiceSwitch, Detail: "noise switched to " + target}, nil
}
