package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSeedVariesByConnection(t *testing.T) {
	now := time.Unix(1700000000, 0)

	a := sessionSeed("alice", "10.0.0.1:5000", now)
	assert.Equal(t, a, sessionSeed("alice", "10.0.0.1:5000", now), "same inputs, same seed")
	assert.NotEqual(t, a, sessionSeed("bob", "10.0.0.1:5000", now))
	assert.NotEqual(t, a, sessionSeed("alice", "10.0.0.2:5000", now))
	assert.NotEqual(t, a, sessionSeed("alice", "10.0.0.1:5000", now.Add(time.Nanosecond)))
	assert.Positive(t, a)
}

func TestSSHUsername(t *testing.T) {
	tests := map[string]string{
		"alice":     "alice",
		"guest":     "",
		"Anonymous": "",
		"  ":        "",
	}
	for login, want := range tests {
		assert.Equal(t, want, sshUsername(login), "login %q", login)
	}
}

func TestNewSSHServerCreatesHostKeyDir(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "jumpy.db")

	srv, err := NewSSHServer(cfg, nil)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "keys"))
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
	require.NoError(t, srv.Store().Ping(context.Background()))
	assert.NoError(t, srv.Shutdown())
	assert.Nil(t, srv.Store())
}

func TestNewSSHServerRejectsBadGameConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Game.Obstacles.Width = -1
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	_, err := NewSSHServer(cfg, nil)
	assert.Error(t, err)
}
