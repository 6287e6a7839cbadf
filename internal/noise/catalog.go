package noise

import (
	"sort"

	"github.com/rs/zerolog"
)

// Model is one noise family variant. Each declares its eligible arity and
// required parameters, and implements a single capability: build a channel
// from resolved parameters and attach it to the matching gates of an error
// model. Apply never fails; an empty eligible gate set is recorded as a
// logged skip, not an error.
type Model interface {
	Family() string
	SingleQubitOnly() bool
	RequiredParams() []string
	Apply(em *ErrorModel, gates []string, p Params) ChannelSpec
}

// Catalog is the registry of noise models keyed by family.
type Catalog struct {
	models map[string]Model
	log    zerolog.Logger
}

// NewCatalog creates a catalog with all noise families registered.
func NewCatalog(log zerolog.Logger) *Catalog {
	c := &Catalog{
		models: make(map[string]Model),
		log:    log.With().Str("component", "noise_catalog").Logger(),
	}

	c.Register(NewDepolarizing(log))
	c.Register(NewPhaseFlip(log))
	c.Register(NewAmplitudeDamping(log))
	c.Register(NewPhaseDamping(log))
	c.Register(NewThermalRelaxation(log))
	c.Register(NewBitFlip(log))

	c.log.Info().
		Int("models", len(c.models)).
		Msg("Noise catalog initialized")

	return c
}

// Register registers a noise model.
func (c *Catalog) Register(m Model) {
	c.models[m.Family()] = m
	c.log.Debug().
		Str("family", m.Family()).
		Bool("single_qubit_only", m.SingleQubitOnly()).
		Msg("Registered noise model")
}

// Get retrieves a model by family.
func (c *Catalog) Get(family string) (Model, error) {
	m, ok := c.models[family]
	if !ok {
		return nil, &UnknownFamilyError{Family: family}
	}
	return m, nil
}

// Known reports whether the family is registered.
func (c *Catalog) Known(family string) bool {
	_, ok := c.models[family]
	return ok
}

// SingleQubitOnly reports whether the family attaches to single-qubit gates
// only. Unknown families report false; the validator rejects them separately.
func (c *Catalog) SingleQubitOnly(family string) bool {
	m, ok := c.models[family]
	return ok && m.SingleQubitOnly()
}

// Families returns the registered family tokens in sorted order.
func (c *Catalog) Families() []string {
	out := make([]string, 0, len(c.models))
	for f := range c.models {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Apply builds the channel for family and attaches it to the matching gates
// of em, returning the structured application record.
func (c *Catalog) Apply(em *ErrorModel, family string, gates []string, p Params) (ChannelSpec, error) {
	m, err := c.Get(family)
	if err != nil {
		return ChannelSpec{}, err
	}
	return m.Apply(em, gates, p), nil
}
