package config

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitceptron/bitceptron-retriever/internal/scriptbuilder"
)

// NetworkParams resolves the configured network name to its
// chaincfg.Params (only the key version bytes differ between networks,
// per the data model).
func (s *Settings) NetworkParams() (*chaincfg.Params, error) {
	return networkParams(s.Network)
}

func networkParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest", "regression":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("%w: unknown network %q", ErrConfig, name)
	}
}

// SelectedDescriptorSet resolves the configured descriptor names into
// the map scriptbuilder.Build expects. An empty configured list selects
// every descriptor (the documented default), matching §6's table.
func (s *Settings) SelectedDescriptorSet() (map[scriptbuilder.Descriptor]bool, error) {
	names := s.SelectedDescriptors
	if len(names) == 0 {
		names = DefaultSelectedDescriptors
	}
	out := make(map[scriptbuilder.Descriptor]bool, len(names))
	for _, n := range names {
		d, err := parseDescriptorName(n)
		if err != nil {
			return nil, err
		}
		out[d] = true
	}
	return out, nil
}

func parseDescriptorName(name string) (scriptbuilder.Descriptor, error) {
	switch strings.ToLower(name) {
	case "p2pk":
		return scriptbuilder.P2PK, nil
	case "p2pkh":
		return scriptbuilder.P2PKH, nil
	case "p2wpkh":
		return scriptbuilder.P2WPKH, nil
	case "p2sh-p2wpkh", "p2shp2wpkh":
		return scriptbuilder.P2SHP2WPKH, nil
	case "p2tr":
		return scriptbuilder.P2TR, nil
	default:
		return 0, fmt.Errorf("%w: unknown descriptor %q", ErrConfig, name)
	}
}
