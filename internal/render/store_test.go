package render

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/clipstudio/internal/db"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database.Conn())
}

func testSpec() editor.ExportSpec {
	return editor.ExportSpec{
		TrimStart:    2.0,
		TrimEnd:      8.0,
		AspectWidth:  9,
		AspectHeight: 16,
		Canvas:       geometry.Size{Width: 960, Height: 540},
		Video:        geometry.Size{Width: 1920, Height: 1080},
		Keyframes: []editor.ExportKeyframe{
			{Time: 0, Crop: geometry.Rect{X: 100, Y: 0, Width: 607.5, Height: 1080}, Zoom: 1.0},
			{Time: 3.5, Crop: geometry.Rect{X: 400, Y: 0, Width: 607.5, Height: 1080}, Zoom: 1.2},
		},
		Filters: []ffmpeg.FilterSpec{
			{Type: "brightness", Params: map[string]any{"value": 0.1}},
		},
	}
}

func newTestJob() *Job {
	return &Job{
		ID:         uuid.NewString(),
		SessionID:  uuid.NewString(),
		SourcePath: "/videos/source.mp4",
		Format:     "mp4",
		Quality:    "high",
		Spec:       testSpec(),
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, store.Create(ctx, job))

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, got.Status)
	assert.Equal(t, job.SessionID, got.SessionID)
	assert.Equal(t, "mp4", got.Format)
	assert.InDelta(t, 6.0, got.Duration, 1e-9)
	assert.Len(t, got.Spec.Keyframes, 2)
	assert.InDelta(t, 607.5, got.Spec.Keyframes[0].Crop.Width, 1e-9)
	require.Len(t, got.Spec.Filters, 1)
	assert.Equal(t, "brightness", got.Spec.Filters[0].Type)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.StartedAt)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestClaimNextQueued(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.ClaimNextQueued(ctx)
	assert.ErrorIs(t, err, ErrJobNotFound, "empty queue")

	first := newTestJob()
	require.NoError(t, store.Create(ctx, first))
	second := newTestJob()
	require.NoError(t, store.Create(ctx, second))

	claimed, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, claimed.Status)
	assert.NotNil(t, claimed.StartedAt)

	// Claiming again must not return the same job.
	other, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, claimed.ID, other.ID)

	_, err = store.ClaimNextQueued(ctx)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestProgressAndFinishReady(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, store.Create(ctx, job))
	claimed, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpdateProgress(ctx, claimed.ID, 42))
	require.NoError(t, store.SetOutputPath(ctx, claimed.ID, "/exports/out.mp4"))
	require.NoError(t, store.FinishReady(ctx, claimed.ID, 1048576, 6.0))

	got, err := store.Get(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, int64(1048576), got.SizeBytes)
	assert.Equal(t, "/exports/out.mp4", got.OutputPath)
	assert.NotNil(t, got.FinishedAt)
}

func TestFinishErrorRequiresProcessing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, store.Create(ctx, job))

	// Still queued: FinishError must not apply.
	assert.ErrorIs(t, store.FinishError(ctx, job.ID, "boom"), ErrJobNotFound)

	_, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)
	require.NoError(t, store.FinishError(ctx, job.ID, "boom"))

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t, "boom", got.Error)
}

func TestMarkCanceled(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, store.Create(ctx, job))
	require.NoError(t, store.MarkCanceled(ctx, job.ID))

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)

	// Terminal jobs reject a second cancel.
	assert.ErrorIs(t, store.MarkCanceled(ctx, job.ID), ErrInvalidTransition)
	assert.ErrorIs(t, store.MarkCanceled(ctx, "nope"), ErrJobNotFound)
}

func TestMarkCanceledAfterReady(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newTestJob()))
	claimed, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)
	require.NoError(t, store.FinishReady(ctx, claimed.ID, 1024, 6.0))

	// A job that finished before the cancel landed is a conflict, not a
	// missing job.
	err = store.MarkCanceled(ctx, claimed.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrJobNotFound)

	got, err := store.Get(ctx, claimed.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, got.Status)
}

func TestResetStuck(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	job := newTestJob()
	require.NoError(t, store.Create(ctx, job))
	_, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)

	n, err := store.ResetStuck(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, got.Status)
	assert.Nil(t, got.StartedAt)

	// Ready jobs are untouched.
	claimed, err := store.ClaimNextQueued(ctx)
	require.NoError(t, err)
	require.NoError(t, store.FinishReady(ctx, claimed.ID, 1, 1))
	n, err = store.ResetStuck(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListBySession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newTestJob()
	b := newTestJob()
	b.SessionID = a.SessionID
	other := newTestJob()
	for _, j := range []*Job{a, b, other} {
		require.NoError(t, store.Create(ctx, j))
	}

	jobs, err := store.ListBySession(ctx, a.SessionID)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMotionStepsConversion(t *testing.T) {
	spec := testSpec()
	steps := MotionSteps(&spec)

	require.Len(t, steps, 2)
	assert.Equal(t, 0.0, steps[0].Time)
	assert.Equal(t, 608, steps[0].Width, "607.5 rounds to 608, already even")
	assert.Equal(t, 100, steps[0].X)
	assert.Equal(t, 1080, steps[0].Height)
	assert.Equal(t, 3.5, steps[1].Time)
	assert.Equal(t, 400, steps[1].X)
}
