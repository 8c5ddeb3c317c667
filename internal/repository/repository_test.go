package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/config"
)

func TestNewStore_File(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "sessions.json")
	cfg := config.New()
	cfg.Session.Store = config.StoreFile
	cfg.Session.File.Path = path

	lc := fxtest.NewLifecycle(t)
	s, err := NewStore(storeParams{LC: lc, Config: cfg, Log: zap.NewNop()})
	require.NoError(err)
	require.IsType(&JSONStore{}, s)

	lc.RequireStart()
	require.NoError(s.Commit("tok", []byte("x"), time.Now().Add(time.Hour)))
	lc.RequireStop()

	_, err = os.Stat(path)
	require.NoError(err)
}

func TestNewStore_Memory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	s, err := NewStore(storeParams{LC: lc, Config: config.New(), Log: zap.NewNop()})
	require.NoError(t, err)

	lc.RequireStart()
	require.NoError(t, s.Commit("tok", []byte("x"), time.Now().Add(time.Hour)))
	b, found, err := s.Find("tok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("x"), b)
	lc.RequireStop()
}

func TestNewStore_Unknown(t *testing.T) {
	cfg := config.New()
	cfg.Session.Store = "postgres"

	_, err := NewStore(storeParams{LC: fxtest.NewLifecycle(t), Config: cfg, Log: zap.NewNop()})
	assert.ErrorIs(t, err, config.ErrUnknownStore)
}
