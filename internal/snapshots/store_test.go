package snapshots

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	store, err := OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	store := newStore(t)
	v1, err := store.Save("graphs", []byte(`{"version":1}`), "first")
	require.NoError(t, err)
	assert.Equal(t, Version{Number: 1, Created: fixed, Note: "first", Size: 13}, v1)

	v2, err := store.Save("graphs", []byte(`{"version":2}`), "")
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Number)

	latest, err := store.Latest("graphs")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Number)
	assert.Equal(t, "graphs", latest.Name)
	assert.Equal(t, `{"version":2}`, string(latest.Document))

	first, err := store.Get("graphs", 1)
	require.NoError(t, err)
	assert.Equal(t, "first", first.Note)
	assert.Equal(t, `{"version":1}`, string(first.Document))

	history, err := store.History("graphs")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Number)
	assert.Equal(t, 2, history[1].Number)
}

func TestNotFound(t *testing.T) {
	store := newStore(t)
	_, err := store.Latest("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = store.History("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(store.Delete("missing"), ErrNotFound))

	_, err = store.Save("present", []byte("doc"), "")
	require.NoError(t, err)
	for _, number := range []int{0, 2, -1} {
		_, err = store.Get("present", number)
		assert.True(t, errors.Is(err, ErrNotFound), number)
	}
}

func TestInvalidNames(t *testing.T) {
	store := newStore(t)
	for _, name := range []string{"", "a/b"} {
		_, err := store.Save(name, []byte("doc"), "")
		assert.True(t, errors.Is(err, ErrInvalidName), name)
		_, err = store.Latest(name)
		assert.True(t, errors.Is(err, ErrInvalidName), name)
	}
}

func TestNamesAndDelete(t *testing.T) {
	store := newStore(t)
	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := store.Save(name, []byte(name), "")
		require.NoError(t, err)
	}
	_, err = store.Save("alpha", []byte("again"), "")
	require.NoError(t, err)

	names, err = store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	require.NoError(t, store.Delete("alpha"))
	names, err = store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "zeta"}, names)

	// A deleted name starts over
	v, err := store.Save("alpha", []byte("new"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Number)
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, nil)
	require.NoError(t, err)
	_, err = store.Save("kept", []byte("persisted"), "")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dir, nil)
	require.NoError(t, err)
	defer store.Close()
	latest, err := store.Latest("kept")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(latest.Document))
}

func TestCompression(t *testing.T) {
	doc := make([]byte, 4096)
	payload, err := compress(doc)
	require.NoError(t, err)
	assert.Less(t, len(payload), len(doc))

	out, err := decompress(payload)
	require.NoError(t, err)
	assert.Equal(t, doc, out)

	_, err = decompress([]byte("not gzip"))
	assert.Error(t, err)
}
