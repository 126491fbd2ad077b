package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsMatchDocumentedValues(t *testing.T) {
	d := Defaults()
	if d.RPCURL != "127.0.0.1" || d.RPCPort != "8332" {
		t.Fatalf("got rpc %s:%s", d.RPCURL, d.RPCPort)
	}
	if d.RPCTimeoutSeconds != 6800 {
		t.Fatalf("got timeout %d, want 6800", d.RPCTimeoutSeconds)
	}
	if d.ExplorationPath != "*" || d.ExplorationDepth != 100 {
		t.Fatalf("got path=%q depth=%d", d.ExplorationPath, d.ExplorationDepth)
	}
	if d.Sweep {
		t.Fatal("expected sweep=false by default")
	}
	if d.Network != "mainnet" {
		t.Fatalf("got network %q, want mainnet", d.Network)
	}
	if len(d.SelectedDescriptors) != 5 {
		t.Fatalf("got %d default descriptors, want 5", len(d.SelectedDescriptors))
	}
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	s := Defaults()
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for missing cookie path / mnemonic / data dir")
	}
	s.RPCCookiePath = "/tmp/.cookie"
	s.Mnemonic = "abandon abandon abandon"
	s.DataDir = "/tmp/data"
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error once required fields are set: %v", err)
	}
}

func TestValidateRejectsUnknownNetwork(t *testing.T) {
	s := Defaults()
	s.RPCCookiePath, s.Mnemonic, s.DataDir = "/tmp/.cookie", "m", "/tmp"
	s.Network = "not-a-network"
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestValidateRPCIgnoresMissingWalletMaterial(t *testing.T) {
	s := Defaults()
	s.RPCCookiePath = "/tmp/.cookie"
	if err := s.ValidateRPC(); err != nil {
		t.Fatalf("unexpected error with no mnemonic/data dir set: %v", err)
	}
}

func TestValidateRPCRejectsMissingCookiePath(t *testing.T) {
	s := Defaults()
	if err := s.ValidateRPC(); err == nil {
		t.Fatal("expected error for missing cookie path")
	}
}

func TestLoadFromYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := `
bitcoincore_rpc_cookie_path: /data/.cookie
mnemonic: "response tag season adapt huge win catalog correct harbor cruise result east"
passphrase: ""
data_dir: /data
exploration_path: "*a/*a/*a"
exploration_depth: 10
network: regtest
`
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if s.ExplorationPath != "*a/*a/*a" || s.ExplorationDepth != 10 {
		t.Fatalf("got path=%q depth=%d", s.ExplorationPath, s.ExplorationDepth)
	}
	if s.Network != "regtest" {
		t.Fatalf("got network %q, want regtest", s.Network)
	}
	// defaults not overridden by the file survive.
	if s.RPCPort != "8332" {
		t.Fatalf("got rpc port %q, want unchanged default 8332", s.RPCPort)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid settings, got: %v", err)
	}
}

func TestResolvedBasePathsFallsBackToPresets(t *testing.T) {
	s := Defaults()
	paths := s.ResolvedBasePaths()
	if len(paths) == 0 {
		t.Fatal("expected preset fallback to be non-empty")
	}

	s.BaseDerivationPaths = []string{"m/0"}
	paths = s.ResolvedBasePaths()
	if len(paths) != 1 || paths[0] != "m/0" {
		t.Fatalf("got %v, want configured override [m/0]", paths)
	}
}

func TestRPCCookieSplitsUserPass(t *testing.T) {
	dir := t.TempDir()
	cookiePath := filepath.Join(dir, ".cookie")
	if err := os.WriteFile(cookiePath, []byte("__cookie__:abc123\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := &Settings{RPCCookiePath: cookiePath}
	user, pass, err := s.RPCCookie()
	if err != nil {
		t.Fatal(err)
	}
	if user != "__cookie__" || pass != "abc123" {
		t.Fatalf("got %q/%q", user, pass)
	}
}

func TestSelectedDescriptorSetDefaultsToAllFive(t *testing.T) {
	s := Defaults()
	set, err := s.SelectedDescriptorSet()
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 5 {
		t.Fatalf("got %d descriptors, want 5", len(set))
	}
}
