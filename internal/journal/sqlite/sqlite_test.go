package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifest-network/ledgerdash/internal/journal/sqlite"
	"github.com/manifest-network/ledgerdash/internal/models"
)

func TestRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := sqlite.NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	first := models.NewTransfer(0, "0xB", "5")
	first.SubmittedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	first.URL = "http://localhost:8080/v1/transaction/0xB/5"
	first.Status = 200
	first.OK = true
	first.Response = "ok"

	second := models.NewTransfer(1, "0xA", "7")
	second.SubmittedAt = first.SubmittedAt.Add(time.Second)
	second.Status = 500

	require.NoError(t, j.Record(ctx, first))
	require.NoError(t, j.Record(ctx, second))
	// Recording the same transfer twice keeps a single row.
	require.NoError(t, j.Record(ctx, first))

	got, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, 500, got[0].Status)
	assert.False(t, got[0].OK)

	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, "0xB", got[1].Payee)
	assert.Equal(t, "5", got[1].Amount)
	assert.True(t, got[1].OK)
	assert.Equal(t, "ok", got[1].Response)
	assert.True(t, first.SubmittedAt.Equal(got[1].SubmittedAt))

	got, err = j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := sqlite.NewSQLiteJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), models.NewTransfer(0, "0xB", "1")))
	require.NoError(t, j.Close())

	j, err = sqlite.NewSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	got, err := j.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NotNil(t, j.DB())
}
