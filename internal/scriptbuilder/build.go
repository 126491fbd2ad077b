// Package scriptbuilder renders a public key into the output scripts of
// the five canonical single-key templates: pay-to-pubkey,
// pay-to-pubkey-hash, pay-to-witness-pubkey-hash, its P2SH-wrapped form,
// and the taproot key-path-only template.
package scriptbuilder

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Build renders pubkey into an output script for every Descriptor set
// true in selected, keyed by Descriptor.
func Build(pubkey *btcec.PublicKey, params *chaincfg.Params, selected map[Descriptor]bool) (map[Descriptor][]byte, error) {
	out := make(map[Descriptor][]byte, len(selected))
	for d, want := range selected {
		if !want {
			continue
		}
		script, err := build(d, pubkey, params)
		if err != nil {
			return nil, fmt.Errorf("scriptbuilder: %s: %w", d, err)
		}
		out[d] = script
	}
	return out, nil
}

func build(d Descriptor, pubkey *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	switch d {
	case P2PK:
		return p2pkScript(pubkey)
	case P2PKH:
		return p2pkhScript(pubkey, params)
	case P2WPKH:
		return p2wpkhScript(pubkey, params)
	case P2SHP2WPKH:
		return p2shP2wpkhScript(pubkey, params)
	case P2TR:
		return p2trScript(pubkey, params)
	default:
		return nil, fmt.Errorf("unknown descriptor %d", d)
	}
}

func p2pkScript(pubkey *btcec.PublicKey) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(pubkey.SerializeCompressed()).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

func p2pkhScript(pubkey *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	hash160 := btcutil.Hash160(pubkey.SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(hash160, params)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}

func p2wpkhScript(pubkey *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	hash160 := btcutil.Hash160(pubkey.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(hash160, params)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}

func p2shP2wpkhScript(pubkey *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	witnessScript, err := p2wpkhScript(pubkey, params)
	if err != nil {
		return nil, err
	}
	addr, err := btcutil.NewAddressScriptHash(witnessScript, params)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}

func p2trScript(pubkey *btcec.PublicKey, params *chaincfg.Params) ([]byte, error) {
	taprootKey := txscript.ComputeTaprootKeyNoScript(pubkey)
	addr, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(taprootKey), params)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}
