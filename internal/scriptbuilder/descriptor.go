package scriptbuilder

// Descriptor names one of the single-key script-pubkey templates this
// package can build.
type Descriptor int

const (
	P2PK Descriptor = iota
	P2PKH
	P2WPKH
	P2SHP2WPKH
	P2TR
)

func (d Descriptor) String() string {
	switch d {
	case P2PK:
		return "p2pk"
	case P2PKH:
		return "p2pkh"
	case P2WPKH:
		return "p2wpkh"
	case P2SHP2WPKH:
		return "p2sh-p2wpkh"
	case P2TR:
		return "p2tr"
	default:
		return "unknown"
	}
}

// All is every descriptor this package knows how to build, in
// declaration order.
var All = []Descriptor{P2PK, P2PKH, P2WPKH, P2SHP2WPKH, P2TR}
