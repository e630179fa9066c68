package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "var", "lib", "tfl", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	start := time.Now().Add(-time.Minute)
	run := &Run{ID: "2f1c9a40-0000-4000-8000-000000000001", Hostname: "raspberrypi", ServiceName: "taxi-tracker", StartedAt: start}
	require.NoError(t, j.BeginRun(ctx, run))
	assert.Equal(t, OutcomeRunning, run.Outcome)

	require.NoError(t, j.RecordStage(ctx, &StageRecord{RunID: run.ID, Seq: 2, Stage: "PKG_INSTALL", Status: "failed", Message: "E: broken packages"}))
	require.NoError(t, j.RecordStage(ctx, &StageRecord{RunID: run.ID, Seq: 1, Stage: "PKG_UPDATE", Status: "ok", DurationMS: 1200}))
	require.NoError(t, j.FinishRun(ctx, run.ID, OutcomeFailed, "PKG_INSTALL", "E: broken packages", start.Add(30*time.Second)))

	got, err := j.Get(ctx, "2f1c9a40")
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, got.Outcome)
	assert.Equal(t, "PKG_INSTALL", got.FailedStage)
	assert.Equal(t, 30*time.Second, got.Duration().Round(time.Second))
	require.Len(t, got.Stages, 2)
	assert.Equal(t, "PKG_UPDATE", got.Stages[0].Stage)
	assert.Equal(t, "PKG_INSTALL", got.Stages[1].Stage)
}

func TestJournal_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"aaaa", "bbbb", "cccc"} {
		require.NoError(t, j.BeginRun(ctx, &Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	runs, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "cccc", runs[0].ID)
	assert.Equal(t, "bbbb", runs[1].ID)
	assert.Zero(t, runs[0].Duration())
}

func TestJournal_GetErrors(t *testing.T) {
	ctx := context.Background()
	j := openTemp(t)
	require.NoError(t, j.BeginRun(ctx, &Run{ID: "ab01"}))
	require.NoError(t, j.BeginRun(ctx, &Run{ID: "ab02"}))

	_, err := j.Get(ctx, "zz")
	assert.Error(t, err)
	_, err = j.Get(ctx, "ab")
	assert.ErrorContains(t, err, "ambiguous")
}

func TestJournal_FinishUnknownRun(t *testing.T) {
	j := openTemp(t)
	err := j.FinishRun(context.Background(), "missing", OutcomeSuccess, "", "", time.Now())
	assert.Error(t, err)
}
