package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingmoments/studio-backend/internal/catalog/domain"
)

func TestStore_ExportAndPreview(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.ResetToDefaults(context.Background()))
	eventually(t, func() bool { return len(store.List(ViewAdmin)) == 5 })

	file, err := store.Export()
	require.NoError(t, err)
	assert.Regexp(t, `^services-\d{4}-\d{2}-\d{2}\.json$`, file.Filename)
	assert.Contains(t, string(file.Data), "\n  {")

	var round []domain.Service
	require.NoError(t, json.Unmarshal(file.Data, &round))
	assert.Len(t, round, 5)

	preview, err := PreviewImport(file.Data)
	require.NoError(t, err)
	assert.Equal(t, 5, preview.Count)
	assert.Equal(t, 17, preview.SubServices)
	assert.Equal(t, "baby-shoot", preview.ServiceIDs[0])

	summary, err := store.Summary()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Services)
	assert.Equal(t, 17, summary.SubServices)
	assert.Greater(t, summary.SizeKB, int64(0))
}

func TestPreviewImport_Invalid(t *testing.T) {
	_, err := PreviewImport([]byte(`{"not":"a list"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidImport)
}
