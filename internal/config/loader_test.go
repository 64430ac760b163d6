package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateConfigPathRejectsOutsideAllowedDirs(t *testing.T) {
	if err := validateConfigPath("/tmp/not-allowed/config.yaml"); err == nil {
		t.Fatal("expected path outside allowed directories to be rejected")
	}
}

func TestValidateConfigFilePropertiesRejectsWorldReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("data_root: /tmp"), 0644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateConfigFileProperties(info); err == nil {
		t.Fatal("expected 0644 permissions to be rejected")
	}
}

func TestValidateConfigFilePropertiesAccepts0600(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("data_root: /tmp"), 0600); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := validateConfigFileProperties(info); err != nil {
		t.Fatalf("expected 0600 permissions to be accepted: %v", err)
	}
}
