package dict

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShard(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDictionary_Load(t *testing.T) {
	shard := writeShard(t, "names.tsv", "山田\tやまだ\n東\tひがし\n東\tあずま\n")

	d := New(shard)
	require.NoError(t, d.Load())
	assert.True(t, d.Loaded())
	assert.Equal(t, 2, d.Len())

	readings, ok := d.Get("山田")
	require.True(t, ok)
	assert.Equal(t, []string{"やまだ"}, readings)

	// Readings are sorted for determinism.
	readings, ok = d.Get("東")
	require.True(t, ok)
	assert.Equal(t, []string{"あずま", "ひがし"}, readings)
}

func TestDictionary_Load_MergesShards(t *testing.T) {
	a := writeShard(t, "a.tsv", "東\tひがし\n")
	b := writeShard(t, "b.tsv", "東\tあずま\n東\tひがし\n")

	d := New(a, b)
	require.NoError(t, d.Load())

	readings, ok := d.Get("東")
	require.True(t, ok)
	// Duplicates across shards collapse.
	assert.Equal(t, []string{"あずま", "ひがし"}, readings)
}

func TestDictionary_Load_Errors(t *testing.T) {
	t.Run("missing shard", func(t *testing.T) {
		d := New(filepath.Join(t.TempDir(), "absent.tsv"))
		assert.Error(t, d.Load())
	})

	t.Run("malformed line names shard and line", func(t *testing.T) {
		shard := writeShard(t, "bad.tsv", "山田\tやまだ\nno-tab-here\n")
		d := New(shard)
		err := d.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.tsv:2")
	})

	t.Run("failed load keeps previous entries", func(t *testing.T) {
		shard := writeShard(t, "names.tsv", "山田\tやまだ\n")
		d := New(shard)
		require.NoError(t, d.Load())

		require.NoError(t, os.WriteFile(shard, []byte("broken\n"), 0o644))
		assert.Error(t, d.Reload())

		_, ok := d.Get("山田")
		assert.True(t, ok)
	})
}

func TestDictionary_GetBeforeLoad(t *testing.T) {
	d := New()
	_, ok := d.Get("山田")
	assert.False(t, ok)
	assert.False(t, d.Loaded())
}

func TestDictionary_EmptyAndBlankLines(t *testing.T) {
	shard := writeShard(t, "names.tsv", "\n山田\tやまだ\n\n")
	d := New(shard)
	require.NoError(t, d.Load())
	assert.Equal(t, 1, d.Len())
}

func TestDictionary_Watch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "names.tsv")
	require.NoError(t, os.WriteFile(shard, []byte("山田\tやまだ\n"), 0o644))

	d := New(shard)
	require.NoError(t, d.Load())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx) }()

	// Give the watcher a moment to register before mutating the shard.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(shard, []byte("山田\tやまだ\n東\tひがし\n"), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := d.Get("東")
		return ok
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on context cancel")
	}
}

func TestFromMap(t *testing.T) {
	l := FromMap(map[string][]string{"山田": {"やまだ"}})
	readings, ok := l.Get("山田")
	require.True(t, ok)
	assert.Equal(t, []string{"やまだ"}, readings)

	_, ok = Empty.Get("山田")
	assert.False(t, ok)
}
