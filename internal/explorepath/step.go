package explorepath

import "fmt"

// HardenedKeyStart is the first index considered hardened in BIP32 (2^31),
// matching github.com/btcsuite/btcd/btcutil/hdkeychain.HardenedKeyStart.
const HardenedKeyStart uint32 = 1 << 31

// Hardness selects which half of a step's range is produced: the hardened
// indices, the normal indices, or both (hardened half first).
type Hardness int

const (
	Normal Hardness = iota
	Hardened
	HardenedAndNormal
)

func (h Hardness) String() string {
	switch h {
	case Hardened:
		return "hardened"
	case HardenedAndNormal:
		return "hardened-and-normal"
	default:
		return "normal"
	}
}

// Step is one level of a derivation path: an inclusive index range and a
// hardness. Start must be <= End.
type Step struct {
	Start, End uint32
	Hardness   Hardness
}

// NumChildren is the number of concrete indices this step expands to:
// End-Start+1 for Normal/Hardened, twice that for HardenedAndNormal.
func (s Step) NumChildren() uint32 {
	n := s.End - s.Start + 1
	if s.Hardness == HardenedAndNormal {
		return 2 * n
	}
	return n
}

// ValueAt returns the absolute, hardness-tagged BIP32 index for position i
// (0 <= i < NumChildren()). For HardenedAndNormal, the hardened half
// (positions [0, n)) is enumerated before the normal half (positions
// [n, 2n)) — this ordering is observable in iteration and is tested.
func (s Step) ValueAt(i uint32) uint32 {
	n := s.End - s.Start + 1
	switch s.Hardness {
	case Hardened:
		return HardenedKeyStart + s.Start + i
	case HardenedAndNormal:
		if i < n {
			return HardenedKeyStart + s.Start + i
		}
		return s.Start + (i - n)
	default:
		return s.Start + i
	}
}

// String renders the step's canonical mini-language form. It is the
// inverse of parseStep: parseStep(s.String()) reproduces s.
func (s Step) String() string {
	suffix := ""
	switch s.Hardness {
	case Hardened:
		suffix = "'"
	case HardenedAndNormal:
		suffix = "a"
	}
	if s.Start == s.End {
		return fmt.Sprintf("%d%s", s.Start, suffix)
	}
	return fmt.Sprintf("%d..%d%s", s.Start, s.End, suffix)
}
