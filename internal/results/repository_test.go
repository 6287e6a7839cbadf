package results

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/aristath/qlab/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "results.db"),
		Profile: database.ProfileStandard,
		Name:    "results",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.Conn(), zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, repo.Migrate())
	return repo
}

func sampleExperiment(id string, createdAt time.Time) *Experiment {
	return &Experiment{
		ID:           id,
		NumQubits:    3,
		StateType:    "GHZ",
		NoiseType:    "DEPOLARIZING",
		NoiseEnabled: true,
		SimMode:      "qasm",
		Shots:        1024,
		Params:       json.RawMessage(`{"error_rate":0.1}`),
		Payload: &Payload{
			Counts:  map[string]int{"000": 520, "111": 504},
			GateSet: []string{"h", "cx"},
		},
		CreatedAt: createdAt,
	}
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepository(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(sampleExperiment("exp-1", now)))

	got, err := repo.Get("exp-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "exp-1", got.ID)
	assert.Equal(t, 3, got.NumQubits)
	assert.Equal(t, "GHZ", got.StateType)
	assert.True(t, got.NoiseEnabled)
	assert.Equal(t, now, got.CreatedAt)

	require.NotNil(t, got.Payload)
	assert.Equal(t, map[string]int{"000": 520, "111": 504}, got.Payload.Counts)
	assert.Equal(t, []string{"h", "cx"}, got.Payload.GateSet)
	assert.JSONEq(t, `{"error_rate":0.1}`, string(got.Params))
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_DensityPayloadRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	exp := sampleExperiment("exp-density", time.Now().UTC().Truncate(time.Second))
	exp.SimMode = "density"
	exp.Payload = &Payload{
		DensityReal: [][]float64{{0.5, 0.5}, {0.5, 0.5}},
		DensityImag: [][]float64{{0, 0}, {0, 0}},
		GateSet:     []string{"h"},
	}
	require.NoError(t, repo.Save(exp))

	got, err := repo.Get("exp-density")
	require.NoError(t, err)
	require.NotNil(t, got.Payload)
	assert.Equal(t, exp.Payload.DensityReal, got.Payload.DensityReal)
	assert.Nil(t, got.Payload.Counts)
}

func TestRepository_ListNewestFirstWithoutPayload(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(sampleExperiment("old", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(sampleExperiment("mid", base.Add(-1*time.Hour))))
	require.NoError(t, repo.Save(sampleExperiment("new", base)))

	list, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
	assert.Nil(t, list[0].Payload)
}

func TestRepository_ListLimit(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(sampleExperiment(id, base.Add(time.Duration(i)*time.Minute))))
	}

	list, err := repo.List(2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRepository_PruneOlderThan(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Save(sampleExperiment("ancient", base.Add(-100*24*time.Hour))))
	require.NoError(t, repo.Save(sampleExperiment("recent", base)))

	pruned, err := repo.PruneOlderThan(base.Add(-90 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	got, err := repo.Get("ancient")
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepository_DuplicateIDRejected(t *testing.T) {
	repo := newTestRepository(t)

	now := time.Now().UTC()
	require.NoError(t, repo.Save(sampleExperiment("dup", now)))
	assert.Error(t, repo.Save(sampleExperiment("dup", now)))
}

func TestRetentionJob_RunOnce(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().UTC()
	require.NoError(t, repo.Save(sampleExperiment("stale", base.Add(-10*24*time.Hour))))
	require.NoError(t, repo.Save(sampleExperiment("fresh", base)))

	job := NewRetentionJob(repo, 7, "@daily", zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, job.RunOnce())

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRetentionJob_StartStop(t *testing.T) {
	repo := newTestRepository(t)

	job := NewRetentionJob(repo, 7, "@daily", zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, job.Start())
	job.Stop()
}
