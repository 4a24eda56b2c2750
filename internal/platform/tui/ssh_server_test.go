package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gate-runner/internal/config"
)

func newTestSSHServer(t *testing.T, strict bool) *SSHServer {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "journal.db")
	cfg.Strict = strict
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	return srv
}

func TestSSHShutdownKeepsJournalOpenWhileDraining(t *testing.T) {
	srv := newTestSSHServer(t, false)
	if srv.store == nil {
		t.Fatal("server should open the journal")
	}

	// A session still running during the drain writes its last gates.
	var drainErr error
	srv.drain = func(context.Context) error {
		run, err := srv.store.StartRun(1, "normal", "alice")
		if err != nil {
			drainErr = err
			return nil
		}
		drainErr = srv.store.EndRun(run.ID)
		return nil
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if drainErr != nil {
		t.Errorf("journal write during drain failed: %v", drainErr)
	}
	if _, err := srv.store.StartRun(2, "normal", "bob"); err == nil {
		t.Error("journal should be closed after shutdown")
	}
}

func TestSSHSessionOptions(t *testing.T) {
	srv := newTestSSHServer(t, true)
	defer srv.Shutdown()

	opts := srv.sessionOptions("alice", 100, 30)
	if !opts.Strict {
		t.Error("strict server should give sessions strict invariants")
	}
	if opts.Player != "alice" || opts.Store != srv.store {
		t.Errorf("options = %+v, expected player alice on the server journal", opts)
	}
	if opts.Runtime.ScreenW != 100 || opts.Runtime.ScreenH != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	}
	if opts.Runtime.Seed == 0 {
		t.Error("every session should get a time seed")
	}
	if opts.Gates != config.DefaultGatesConfig() {
		t.Error("sessions should play the server's config")
	}

	lenient := newTestSSHServer(t, false)
	defer lenient.Shutdown()
	if lenient.sessionOptions("bob", 80, 24).Strict {
		t.Error("default server should keep sessions lenient")
	}
}
