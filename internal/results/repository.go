// Package results persists finished experiment runs. Each run is stored as
// one row: the resolved configuration as queryable columns, and the
// measurement payload (counts or density matrix) as a msgpack blob.
package results

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Experiment is one persisted run.
type Experiment struct {
	ID           string          `json:"id"`
	NumQubits    int             `json:"num_qubits"`
	StateType    string          `json:"state_type"`
	NoiseType    string          `json:"noise_type"`
	NoiseEnabled bool            `json:"noise_enabled"`
	SimMode      string          `json:"sim_mode"`
	Shots        int             `json:"shots"`
	Params       json.RawMessage `json:"params,omitempty"`
	Payload      *Payload        `json:"payload,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Payload holds the simulation output for a run. Exactly one of Counts and
// the density pair is populated, depending on the simulation mode.
type Payload struct {
	Counts      map[string]int `msgpack:"counts,omitempty" json:"counts,omitempty"`
	DensityReal [][]float64    `msgpack:"density_real,omitempty" json:"density_real,omitempty"`
	DensityImag [][]float64    `msgpack:"density_imag,omitempty" json:"density_imag,omitempty"`
	GateSet     []string       `msgpack:"gate_set" json:"gate_set"`
}

// Repository handles experiment persistence.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates an experiment results repository.
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "results").Logger(),
	}
}

// Migrate creates the experiments table if it does not exist.
func (r *Repository) Migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS experiments (
			id            TEXT PRIMARY KEY,
			num_qubits    INTEGER NOT NULL,
			state_type    TEXT NOT NULL,
			noise_type    TEXT NOT NULL,
			noise_enabled INTEGER NOT NULL,
			sim_mode      TEXT NOT NULL,
			shots         INTEGER NOT NULL,
			params_json   TEXT NOT NULL DEFAULT '{}',
			payload       BLOB,
			created_at    INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_experiments_created_at ON experiments(created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate experiments table: %w", err)
	}
	return nil
}

// Save stores a finished run.
func (r *Repository) Save(exp *Experiment) error {
	params := exp.Params
	if params == nil {
		params = json.RawMessage("{}")
	}

	var blob []byte
	if exp.Payload != nil {
		var err error
		blob, err = msgpack.Marshal(exp.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	_, err := r.db.Exec(`
		INSERT INTO experiments
			(id, num_qubits, state_type, noise_type, noise_enabled, sim_mode, shots, params_json, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, exp.ID, exp.NumQubits, exp.StateType, exp.NoiseType, boolToInt(exp.NoiseEnabled),
		exp.SimMode, exp.Shots, string(params), blob, exp.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save experiment %s: %w", exp.ID, err)
	}

	r.log.Debug().Str("id", exp.ID).Str("state_type", exp.StateType).Msg("Experiment saved")
	return nil
}

// Get retrieves one run by id, including its decoded payload.
// Returns nil if the run doesn't exist (not an error).
func (r *Repository) Get(id string) (*Experiment, error) {
	row := r.db.QueryRow(`
		SELECT id, num_qubits, state_type, noise_type, noise_enabled, sim_mode, shots, params_json, payload, created_at
		FROM experiments WHERE id = ?
	`, id)

	exp, err := scanExperiment(row, true)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get experiment %s: %w", id, err)
	}
	return exp, nil
}

// List returns the most recent runs, newest first, without payloads.
func (r *Repository) List(limit int) ([]*Experiment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, num_qubits, state_type, noise_type, noise_enabled, sim_mode, shots, params_json, created_at
		FROM experiments ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var out []*Experiment
	for rows.Next() {
		exp, err := scanExperiment(rows, false)
		if err != nil {
			r.log.Warn().Err(err).Msg("Failed to scan experiment row")
			continue
		}
		out = append(out, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experiments: %w", err)
	}
	return out, nil
}

// PruneOlderThan deletes runs created before the cutoff and returns the
// number of rows removed.
func (r *Repository) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec("DELETE FROM experiments WHERE created_at < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune experiments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Count returns the total number of stored runs.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM experiments").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count experiments: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperiment(row rowScanner, withPayload bool) (*Experiment, error) {
	var (
		exp       Experiment
		enabled   int
		params    string
		blob      []byte
		createdAt int64
	)

	dest := []any{&exp.ID, &exp.NumQubits, &exp.StateType, &exp.NoiseType, &enabled, &exp.SimMode, &exp.Shots, &params}
	if withPayload {
		dest = append(dest, &blob)
	}
	dest = append(dest, &createdAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	exp.NoiseEnabled = enabled != 0
	exp.Params = json.RawMessage(params)
	exp.CreatedAt = time.Unix(createdAt, 0).UTC()

	if len(blob) > 0 {
		var payload Payload
		if err := msgpack.Unmarshal(blob, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload: %w", err)
		}
		exp.Payload = &payload
	}
	return &exp, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
