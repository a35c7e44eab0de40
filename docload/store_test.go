package docload

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "docs.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePutGet(t *testing.T) {
	store := openTestStore(t)

	id, err := store.Put("https://example.com/doc", "1.0.0", []byte(`{"openapi":"3.1.0"}`))
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := store.Get("https://example.com/doc")
	assert.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "1.0.0", doc.Version)
	assert.Equal(t, []byte(`{"openapi":"3.1.0"}`), doc.Body)
	assert.False(t, doc.FetchedAt.IsZero())
}

func TestStoreGetLatest(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Put("source", "1.0.0", []byte("old"))
	assert.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = store.Put("source", "1.1.0", []byte("new"))
	assert.NoError(t, err)

	doc, err := store.Get("source")
	assert.NoError(t, err)
	assert.Equal(t, "1.1.0", doc.Version)
	assert.Equal(t, []byte("new"), doc.Body)
}

func TestStoreGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreHistory(t *testing.T) {
	store := openTestStore(t)

	versions := []string{"1.0.0", "1.1.0", "2.0.0"}
	for _, v := range versions {
		_, err := store.Put("source", v, []byte(v))
		assert.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	_, err := store.Put("other", "9.9.9", []byte("x"))
	assert.NoError(t, err)

	docs, err := store.History("source", 0)
	assert.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, "2.0.0", docs[0].Version)
	assert.Equal(t, "1.0.0", docs[2].Version)

	docs, err = store.History("source", 2)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "2.0.0", docs[0].Version)
}
