package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, Config{Driver: "memory"}, "")
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &Memory{}, s)

	path := filepath.Join(t.TempDir(), "scores.yaml")
	s, closeFn, err = Open(ctx, Config{Driver: "file", Path: path}, "alice")
	require.NoError(t, err)
	closeFn()
	assert.Equal(t, &File{path: path, key: "bestScore:alice"}, s)

	mr := miniredis.RunT(t)
	s, closeFn, err = Open(ctx, Config{Driver: "redis", RedisURL: "redis://" + mr.Addr()}, "bob")
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, s.Save(ctx, 40))
	v, err := mr.Get("blockterm:bestScore:bob")
	require.NoError(t, err)
	assert.Equal(t, "40", v)
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := Open(ctx, Config{Driver: "sqlite"}, "")
	assert.Error(t, err)

	_, _, err = Open(ctx, Config{Driver: "redis", RedisURL: "not a url"}, "")
	assert.Error(t, err)

	_, _, err = Open(ctx, Config{Driver: "postgres", PGDSN: "::bad dsn::"}, "")
	assert.Error(t, err)
}
