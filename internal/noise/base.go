package noise

import "github.com/rs/zerolog"

// base carries the logging shared by all noise models and emits the
// structured application record required for downstream observability.
type base struct {
	log zerolog.Logger
}

func newBase(family string, log zerolog.Logger) base {
	return base{log: log.With().Str("noise_model", family).Logger()}
}

// record logs the outcome of an Apply call: attached with parameters, or
// skipped with the reason.
func (b base) record(spec ChannelSpec, requested []string) {
	if !spec.Applied {
		b.log.Warn().
			Str("family", spec.Family).
			Strs("requested_gates", requested).
			Str("reason", spec.SkipReason).
			Msg("Noise channel skipped")
		return
	}

	ev := b.log.Info().
		Str("family", spec.Family).
		Strs("gates", spec.Gates)
	for k, v := range spec.Params {
		ev = ev.Float64(k, v)
	}
	ev.Msg("Noise channel attached")
}
