package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierview/tierview/pkg/meta"
	"github.com/tierview/tierview/pkg/meta/metatest"
)

// TestBadgerMetadataStore runs the MetadataStore conformance suite
// against the Badger implementation using an in-memory database.
func TestBadgerMetadataStore(t *testing.T) {
	suite := &metatest.StoreTestSuite{
		NewStore: func(t *testing.T) meta.MetadataStore {
			store, err := NewBadgerMetadataStore(context.Background(), Config{InMemory: true})
			if err != nil {
				t.Fatalf("Failed to create BadgerMetadataStore: %v", err)
			}
			return store
		},
	}

	suite.Run(t)
}

// TestBadgerMetadataStorePersistence verifies entries survive reopening
// the same database directory.
func TestBadgerMetadataStorePersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewBadgerMetadataStore(ctx, Config{Dir: dir})
	require.NoError(t, err)

	_, err = store.CreateDirectory(ctx, "/persisted")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewBadgerMetadataStore(ctx, Config{Dir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	info, err := reopened.GetFileInfo(ctx, "/persisted")
	require.NoError(t, err)
	assert.True(t, info.IsDirectory)
}
