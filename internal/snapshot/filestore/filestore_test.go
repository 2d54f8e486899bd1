package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/homa/internal/snapshot"
	"github.com/MrJamesThe3rd/homa/internal/snapshot/filestore"
)

func TestStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	ctx := context.Background()

	s, err := filestore.New(dir)
	require.NoError(t, err)

	_, err = s.Get(ctx, snapshot.KeyInvoices)
	assert.ErrorIs(t, err, snapshot.ErrNotFound)

	require.NoError(t, s.Put(ctx, snapshot.KeyInvoices, []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, snapshot.KeyInvoices, []byte(`[2]`)))

	got, err := s.Get(ctx, snapshot.KeyInvoices)
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
