package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := loadDotenv(); err != nil {
		t.Errorf("loadDotenv() with no .env = %v, want nil", err)
	}
}

func TestLoadDotenvAppliesValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TETRIS_FPS", "")
	os.Unsetenv("TETRIS_FPS")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TETRIS_FPS=30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := loadDotenv(); err != nil {
		t.Fatalf("loadDotenv() = %v", err)
	}
	if got := envInt("TETRIS_FPS", 60); got != 30 {
		t.Errorf("TETRIS_FPS = %d, want 30", got)
	}
}

func TestLoadDotenvMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TETRIS_DB='unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := loadDotenv(); err == nil {
		t.Error("loadDotenv() with a malformed .env = nil, want error")
	}
}

func TestLoadDotenvUnreadable(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// A directory named .env exists but cannot be read as a file.
	if err := os.Mkdir(filepath.Join(dir, ".env"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := loadDotenv(); err == nil {
		t.Error("loadDotenv() with an unreadable .env = nil, want error")
	}
}

func TestEnvIntFallback(t *testing.T) {
	t.Setenv("TETRIS_FPS", "fast")
	if got := envInt("TETRIS_FPS", 60); got != 60 {
		t.Errorf("envInt with garbage = %d, want fallback 60", got)
	}
}
