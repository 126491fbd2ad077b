// Package keyderiver turns a BIP39 mnemonic into a BIP32 master extended
// key and derives public keys for arbitrary absolute paths from it.
package keyderiver

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"

	"github.com/bitceptron/bitceptron-retriever/internal/sensitive"
)

// KeyDeriver holds a master extended key derived from a mnemonic and
// produces public keys along arbitrary derivation paths. Close must be
// called to zeroize the held private key material. The mnemonic's seed
// bytes never outlive New: they are zeroized as soon as the master key
// is derived from them.
type KeyDeriver struct {
	master *hdkeychain.ExtendedKey
	closed bool
}

// New validates mnemonic (normalizing it per BIP39), derives its seed
// with passphrase, and derives the master extended key for net.
func New(mnemonic, passphrase string, net *chaincfg.Params) (*KeyDeriver, error) {
	mnemonic = norm.NFKD.String(mnemonic)
	passphrase = norm.NFKD.String(passphrase)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seedBytes, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, ErrInvalidMnemonic
	}
	seed := sensitive.NewBytes(seedBytes)
	defer seed.Close()

	master, err := hdkeychain.NewMaster(seed.Slice(), net)
	if err != nil {
		return nil, ErrMasterKeyDerivation
	}

	return &KeyDeriver{master: master}, nil
}

// DerivePubKey walks path from the master key using non-standard
// derivation at every step (the permissive variant used by hardware and
// software wallets alike, as opposed to BIP32's strict zero-padding
// check) and returns the resulting public key.
func (d *KeyDeriver) DerivePubKey(path []uint32) (*btcec.PublicKey, error) {
	current := d.master
	for _, idx := range path {
		next, err := current.DeriveNonStandard(idx)
		if err != nil {
			return nil, ErrChildDerivation
		}
		current = next
	}
	return current.ECPubKey()
}

// Close zeroizes the held master extended key. Safe to call multiple
// times.
func (d *KeyDeriver) Close() {
	if d == nil || d.closed {
		return
	}
	d.master.Zero()
	d.closed = true
}
