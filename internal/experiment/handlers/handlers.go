// Package handlers provides HTTP handlers for experiment submission and
// retrieval.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/qlab/internal/experiment"
	"github.com/aristath/qlab/internal/noise"
	"github.com/aristath/qlab/internal/results"
	"github.com/aristath/qlab/internal/simulator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler provides HTTP handlers for experiment endpoints.
type Handler struct {
	assembler *experiment.Assembler
	sim       *simulator.Service
	repo      *results.Repository
	catalog   *noise.Catalog
	log       zerolog.Logger
}

// NewHandler creates a new experiment handler.
func NewHandler(assembler *experiment.Assembler, sim *simulator.Service, repo *results.Repository, catalog *noise.Catalog, log zerolog.Logger) *Handler {
	return &Handler{
		assembler: assembler,
		sim:       sim,
		repo:      repo,
		catalog:   catalog,
		log:       log.With().Str("handler", "experiments").Logger(),
	}
}

// runRequest is the POST /api/experiments body. Params carries the raw
// parameter overrides; Resolutions optionally scripts an answer per conflict
// check, keyed by check name.
type runRequest struct {
	Params      map[string]any                 `json:"params"`
	Resolutions map[string]experiment.Decision `json:"resolutions"`
}

// runResponse is the POST /api/experiments reply.
type runResponse struct {
	ID        string              `json:"id"`
	Config    configView          `json:"config"`
	Decisions []experiment.Record `json:"decisions,omitempty"`
	Outcome   *simulator.Outcome  `json:"outcome"`
}

// configView is the resolved configuration as returned to clients.
type configView struct {
	NumQubits     int            `json:"num_qubits"`
	StateType     string         `json:"state_type"`
	NoiseType     string         `json:"noise_type"`
	NoiseEnabled  bool           `json:"noise_enabled"`
	Shots         int            `json:"shots"`
	SimMode       string         `json:"sim_mode"`
	Visualization string         `json:"visualization_type"`
	ErrorRate     *float64       `json:"error_rate,omitempty"`
	ZProb         *float64       `json:"z_prob,omitempty"`
	IProb         *float64       `json:"i_prob,omitempty"`
	T1            *float64       `json:"t1,omitempty"`
	T2            *float64       `json:"t2,omitempty"`
	CustomParams  map[string]any `json:"custom_params,omitempty"`
}

func viewOf(cfg *experiment.Config) configView {
	return configView{
		NumQubits:     cfg.NumQubits,
		StateType:     cfg.StateType,
		NoiseType:     cfg.NoiseType,
		NoiseEnabled:  cfg.NoiseEnabled,
		Shots:         cfg.Shots,
		SimMode:       cfg.SimMode,
		Visualization: cfg.Visualization,
		ErrorRate:     cfg.ErrorRate,
		ZProb:         cfg.ZProb,
		IProb:         cfg.IProb,
		T1:            cfg.T1,
		T2:            cfg.T2,
		CustomParams:  cfg.CustomParams,
	}
}

// HandleRun handles POST /api/experiments. It assembles and validates the
// configuration, runs the simulation, and persists the result.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var src experiment.DecisionSource
	if len(req.Resolutions) > 0 {
		src = experiment.ScriptedSource(req.Resolutions)
	}

	res, err := h.assembler.Assemble(req.Params, src)
	if err != nil {
		h.writeAssemblyError(w, err)
		return
	}

	outcome, err := h.sim.Run(res.Config)
	if err != nil {
		h.log.Error().Err(err).Msg("Simulation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := uuid.New().String()
	if err := h.persist(id, res, outcome); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to persist experiment")
		writeError(w, http.StatusInternalServerError, "Failed to persist experiment")
		return
	}

	writeJSON(w, http.StatusCreated, runResponse{
		ID:        id,
		Config:    viewOf(res.Config),
		Decisions: res.Decisions,
		Outcome:   outcome,
	})
}

func (h *Handler) persist(id string, res *experiment.Result, outcome *simulator.Outcome) error {
	params, err := json.Marshal(viewOf(res.Config))
	if err != nil {
		return err
	}
	return h.repo.Save(&results.Experiment{
		ID:           id,
		NumQubits:    res.Config.NumQubits,
		StateType:    res.Config.StateType,
		NoiseType:    res.Config.NoiseType,
		NoiseEnabled: res.Config.NoiseEnabled,
		SimMode:      res.Config.SimMode,
		Shots:        res.Config.Shots,
		Params:       params,
		Payload: &results.Payload{
			Counts:      outcome.Counts,
			DensityReal: outcome.DensityReal,
			DensityImag: outcome.DensityImag,
			GateSet:     outcome.GateSet,
		},
		CreatedAt: time.Now().UTC(),
	})
}

// writeAssemblyError maps assembly failures onto HTTP statuses. Invalid
// parameters are unprocessable; a cancelled resolution is a conflict the
// client resolves by restarting parameter collection.
func (h *Handler) writeAssemblyError(w http.ResponseWriter, err error) {
	if errors.Is(err, experiment.ErrResolutionAborted) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	var (
		cv       *experiment.ConstraintViolation
		badState *experiment.UnknownStateFamilyError
		badNoise *experiment.UnknownNoiseFamilyError
	)
	if errors.As(err, &cv) || errors.As(err, &badState) || errors.As(err, &badNoise) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.log.Error().Err(err).Msg("Assembly failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

// HandleList handles GET /api/experiments
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	experiments, err := h.repo.List(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list experiments")
		writeError(w, http.StatusInternalServerError, "Failed to list experiments")
		return
	}
	if experiments == nil {
		experiments = []*results.Experiment{}
	}
	writeJSON(w, http.StatusOK, experiments)
}

// HandleGet handles GET /api/experiments/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	exp, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get experiment")
		writeError(w, http.StatusInternalServerError, "Failed to get experiment")
		return
	}
	if exp == nil {
		writeError(w, http.StatusNotFound, "Experiment not found")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

// familyView describes one catalog entry for GET /api/catalog.
type familyView struct {
	Family          string   `json:"family"`
	SingleQubitOnly bool     `json:"single_qubit_only"`
	RequiredParams  []string `json:"required_params"`
}

// HandleCatalog handles GET /api/catalog
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	families := h.catalog.Families()
	out := make([]familyView, 0, len(families))
	for _, f := range families {
		m, err := h.catalog.Get(f)
		if err != nil {
			continue
		}
		out = append(out, familyView{
			Family:          m.Family(),
			SingleQubitOnly: m.SingleQubitOnly(),
			RequiredParams:  m.RequiredParams(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
