package savegame

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStore_SaveLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "saves"), 0)

	require.NoError(t, s.Save("porch", []byte(`{"currentMap":0}`)))

	data, err := s.Load("porch")
	require.NoError(t, err)
	assert.Equal(t, `{"currentMap":0}`, string(data))
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir(), 0)

	require.NoError(t, s.Save("a", []byte("one")))
	require.NoError(t, s.Save("a", []byte("two")))

	data, err := s.Load("a")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(t.TempDir(), 0)

	_, err := s.Load("nothing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestStore_InvalidSlot(t *testing.T) {
	s := NewStore(t.TempDir(), 0)

	for _, name := range []string{"", "Upper", "../escape", "a b", "slot.json", "abcdefghijklmnopqrstuvwxyz0123456789"} {
		assert.ErrorIs(t, s.Save(name, []byte("x")), ErrInvalidSlot, name)
		_, err := s.Load(name)
		assert.ErrorIs(t, err, ErrInvalidSlot, name)
	}
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, 0)

	slots, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, s.Save("zeta", []byte("z")))
	require.NoError(t, s.Save("alpha", []byte("a")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	slots, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, slots)
}

func TestStore_ListMissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"), 0)

	slots, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestStore_SlotLimit(t *testing.T) {
	s := NewStore(t.TempDir(), 2)

	require.NoError(t, s.Save("a", []byte("1")))
	require.NoError(t, s.Save("b", []byte("2")))
	assert.ErrorIs(t, s.Save("c", []byte("3")), ErrSlotLimit)
	assert.NoError(t, s.Save("a", []byte("overwrite is fine")))
}

func TestStore_ConcurrentSaves(t *testing.T) {
	s := NewStore(t.TempDir(), 0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.Save("shared", []byte{byte('a' + i)}))
		}(i)
	}
	wg.Wait()

	data, err := s.Load("shared")
	require.NoError(t, err)
	assert.Len(t, data, 1)
}

func TestPropertySaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rapid.Check(t, func(t *rapid.T) {
		s := NewStore(dir, 0)
		slot := rapid.StringMatching(`[a-z0-9_-]{1,32}`).Draw(t, "slot")
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")

		require.NoError(t, s.Save(slot, data))
		got, err := s.Load(slot)
		require.NoError(t, err)
		assert.Equal(t, len(data), len(got))
		assert.Equal(t, string(data), string(got))
	})
}
