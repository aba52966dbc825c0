package config

import (
	"os"
	"testing"
)

func TestLoadRequiresVaultMasterSecret(t *testing.T) {
	os.Unsetenv("BEYOND_VAULT_MASTER_SECRET")

	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to fail without a vault master secret")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	os.Setenv("BEYOND_VAULT_MASTER_SECRET", "test-secret")
	defer os.Unsetenv("BEYOND_VAULT_MASTER_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Fatalf("unexpected default address: %s", cfg.Server.Address())
	}
	if cfg.MinIO.Bucket != "beyond" {
		t.Fatalf("unexpected default bucket: %s", cfg.MinIO.Bucket)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected default bcrypt cost: %d", cfg.Auth.BcryptCost)
	}
	if cfg.Vault.MasterSecret != "test-secret" {
		t.Fatalf("vault secret not carried through")
	}
}

func TestLoadClampsBcryptCost(t *testing.T) {
	os.Setenv("BEYOND_VAULT_MASTER_SECRET", "test-secret")
	os.Setenv("BEYOND_AUTH_BCRYPT_COST", "99")
	defer func() {
		os.Unsetenv("BEYOND_VAULT_MASTER_SECRET")
		os.Unsetenv("BEYOND_AUTH_BCRYPT_COST")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("expected out-of-range cost to fall back to 12, got %d", cfg.Auth.BcryptCost)
	}
}
