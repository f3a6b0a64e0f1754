package tui

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bear-run/internal/storage"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "runs.db")

	srv, err := NewSSHServer(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("expected the run ledger to open")
	}
	return srv
}

func TestSSHServerShutdownClosesLedgerLast(t *testing.T) {
	srv := newTestSSHServer(t)

	run := storage.Run{Player: "guest", Outcome: storage.OutcomeLost, Reason: "collision"}
	if _, err := srv.store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() before shutdown failed: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("expected the store handle to stay set after shutdown")
	}
	if _, err := srv.store.SaveRun(run); err == nil {
		t.Error("expected SaveRun to fail once the ledger is closed")
	}

	// A second shutdown must not close the ledger again
	if err := srv.Shutdown(); err != nil {
		t.Errorf("second Shutdown() failed: %v", err)
	}
}
