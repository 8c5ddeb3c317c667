package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONStore_CommitFindDelete(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	s := NewJSON(filepath.Join(t.TempDir(), "sessions.json"), zap.NewNop())

	require.NoError(s.Commit("tok", []byte("data"), time.Now().Add(time.Hour)))

	b, found, err := s.Find("tok")
	require.NoError(err)
	assert.True(found)
	assert.Equal([]byte("data"), b)

	require.NoError(s.Delete("tok"))
	_, found, err = s.Find("tok")
	require.NoError(err)
	assert.False(found)
}

func TestJSONStore_Expired(t *testing.T) {
	require := require.New(t)

	s := NewJSON(filepath.Join(t.TempDir(), "sessions.json"), zap.NewNop())
	require.NoError(s.Commit("tok", []byte("data"), time.Now().Add(-time.Second)))

	_, found, err := s.Find("tok")
	require.NoError(err)
	require.False(found)
}

func TestJSONStore_SurvivesRestart(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "nested", "sessions.json")

	s := NewJSON(path, zap.NewNop())
	require.NoError(s.Commit("live", []byte("a"), time.Now().Add(time.Hour)))
	require.NoError(s.Commit("dead", []byte("b"), time.Now().Add(-time.Hour)))
	require.NoError(s.stop(context.Background()))

	_, err := os.Stat(path)
	require.NoError(err)

	reopened := NewJSON(path, zap.NewNop())
	b, found, err := reopened.Find("live")
	require.NoError(err)
	assert.True(found)
	assert.Equal([]byte("a"), b)
	assert.NotContains(reopened.data.Sessions, "dead")
}

func TestJSONStore_PathIsDir(t *testing.T) {
	dir := t.TempDir()
	s := NewJSON(dir, zap.NewNop())
	assert.Empty(t, s.data.Sessions)
	assert.ErrorIs(t, s.readfile(), errTableFileIsDir)
}
