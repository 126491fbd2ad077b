// Package config loads and validates the settings that drive a
// retrieval run: RPC connection details, seed material, and the
// exploration-path search parameters. Settings can be built
// programmatically or loaded from a YAML file with environment-variable
// overrides, following the koanf composition the wider example pack
// uses for this job.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf"
	yaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/bitceptron/bitceptron-retriever/internal/walletpresets"
)

// Defaults matching the documented constants table.
const (
	DefaultRPCURL            = "127.0.0.1"
	DefaultRPCPort           = "8332"
	DefaultRPCTimeoutSeconds = uint64(6800)
	DefaultExplorationPath   = "*"
	DefaultExplorationDepth  = uint32(100)
	DefaultSweep             = false
	DefaultNetwork           = "mainnet"
)

// DefaultSelectedDescriptors names every descriptor this package covers;
// used when the config omits selected_descriptors entirely.
var DefaultSelectedDescriptors = []string{"p2pk", "p2pkh", "p2wpkh", "p2sh-p2wpkh", "p2tr"}

// Settings holds one retrieval run's fully-resolved configuration.
// Mnemonic and Passphrase are handed to keyderiver.New as plain strings
// (Go strings cannot be zeroized in place); keyderiver.New immediately
// derives and wraps the resulting seed bytes in a sensitive.Bytes, which
// is the first point at which the sensitive material can be made to
// obey the zeroize-on-exit guarantee.
type Settings struct {
	RPCURL            string `koanf:"bitcoincore_rpc_url"`
	RPCPort           string `koanf:"bitcoincore_rpc_port"`
	RPCCookiePath     string `koanf:"bitcoincore_rpc_cookie_path"`
	RPCTimeoutSeconds uint64 `koanf:"bitcoincore_rpc_timeout_seconds"`

	Mnemonic   string `koanf:"mnemonic"`
	Passphrase string `koanf:"passphrase"`

	BaseDerivationPaths []string `koanf:"base_derivation_paths"`
	ExplorationPath     string   `koanf:"exploration_path"`
	ExplorationDepth    uint32   `koanf:"exploration_depth"`
	Sweep               bool     `koanf:"sweep"`

	Network             string   `koanf:"network"`
	SelectedDescriptors []string `koanf:"selected_descriptors"`

	DataDir string `koanf:"data_dir"`
}

// Defaults returns a Settings populated with every documented default,
// leaving the required fields (mnemonic, passphrase, cookie path,
// data dir) empty for the caller to fill in.
func Defaults() *Settings {
	return &Settings{
		RPCURL:              DefaultRPCURL,
		RPCPort:              DefaultRPCPort,
		RPCTimeoutSeconds:    DefaultRPCTimeoutSeconds,
		ExplorationPath:      DefaultExplorationPath,
		ExplorationDepth:     DefaultExplorationDepth,
		Sweep:                DefaultSweep,
		Network:              DefaultNetwork,
		SelectedDescriptors:  append([]string(nil), DefaultSelectedDescriptors...),
	}
}

// Load reads path as YAML into a Settings seeded with Defaults,
// then applies any BITCEPTRON_-prefixed environment variable override
// (e.g. BITCEPTRON_MNEMONIC overrides "mnemonic" and
// BITCEPTRON_EXPLORATION_PATH overrides "exploration_path"; a "__" in
// the name becomes the koanf "." delimiter, which no Settings key uses). Validate
// is not called here; callers must call it once the Settings is fully
// assembled.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	defaults := Defaults()
	if err := k.Load(confmap.Provider(defaultsMap(defaults), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("BITCEPTRON_", "__", func(s, v string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(s, "BITCEPTRON_"))
		key = strings.ReplaceAll(key, "__", ".")
		return key, v
	}), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &settings, nil
}

// Validate checks that the required cookie path, mnemonic and data dir
// are present and that the network and descriptor names are known,
// returning ErrConfig wrapping the specific problem. The exploration
// path and base paths are not checked here; retriever.New parses them.
// It covers the full root pipeline; commands that only dial the node
// (status) should call ValidateRPC instead.
func (s *Settings) Validate() error {
	if err := s.ValidateRPC(); err != nil {
		return err
	}
	if s.Mnemonic == "" {
		return fmt.Errorf("%w: mnemonic is required", ErrConfig)
	}
	if s.DataDir == "" {
		return fmt.Errorf("%w: data_dir is required", ErrConfig)
	}
	if len(s.SelectedDescriptors) > 0 {
		for _, d := range s.SelectedDescriptors {
			if _, err := parseDescriptorName(d); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateRPC checks only the fields a bare node connection needs,
// for commands (status) that dial independently of the retrieval
// pipeline and require no wallet material.
func (s *Settings) ValidateRPC() error {
	if s.RPCCookiePath == "" {
		return fmt.Errorf("%w: bitcoincore_rpc_cookie_path is required", ErrConfig)
	}
	if _, err := networkParams(s.Network); err != nil {
		return err
	}
	return nil
}

// RPCCookie reads the node's Bitcoin Core ".cookie" file and splits its
// "user:password" contents.
func (s *Settings) RPCCookie() (user, pass string, err error) {
	raw, err := os.ReadFile(s.RPCCookiePath)
	if err != nil {
		return "", "", fmt.Errorf("%w: read rpc cookie: %v", ErrConfig, err)
	}
	parts := strings.SplitN(strings.TrimSpace(string(raw)), ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: malformed rpc cookie file", ErrConfig)
	}
	return parts[0], parts[1], nil
}

// RPCHost returns the "host:port" address the RPC facade should dial.
func (s *Settings) RPCHost() string {
	return s.RPCURL + ":" + s.RPCPort
}

// ResolvedBasePaths returns the configured base derivation paths, or
// the deduplicated union of every built-in wallet preset's base paths
// when none were configured.
func (s *Settings) ResolvedBasePaths() []string {
	if len(s.BaseDerivationPaths) > 0 {
		return s.BaseDerivationPaths
	}
	return walletpresets.AllBasePaths()
}

// defaultsMap flattens the default-valued fields of s into the
// map confmap.Provider expects, so Defaults() can be layered as the
// base source under file/env overrides.
func defaultsMap(s *Settings) map[string]interface{} {
	return map[string]interface{}{
		"bitcoincore_rpc_url":             s.RPCURL,
		"bitcoincore_rpc_port":            s.RPCPort,
		"bitcoincore_rpc_timeout_seconds": s.RPCTimeoutSeconds,
		"exploration_path":                s.ExplorationPath,
		"exploration_depth":               s.ExplorationDepth,
		"sweep":                           s.Sweep,
		"network":                         s.Network,
		"selected_descriptors":            toAnySlice(s.SelectedDescriptors),
	}
}

func toAnySlice(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
