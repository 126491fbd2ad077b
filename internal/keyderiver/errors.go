package keyderiver

import "errors"

var (
	// ErrInvalidMnemonic covers a mnemonic phrase that fails BIP39
	// checksum validation or normalization.
	ErrInvalidMnemonic = errors.New("keyderiver: invalid mnemonic")

	// ErrMasterKeyDerivation covers failure to derive a master extended
	// key from a seed (seed length out of BIP32's accepted range).
	ErrMasterKeyDerivation = errors.New("keyderiver: could not derive master extended key from seed")

	// ErrChildDerivation covers failure partway through a derivation
	// path (an out-of-range or otherwise unrepresentable child index).
	ErrChildDerivation = errors.New("keyderiver: could not derive child key")
)
