// Package explorepath implements the exploration-path mini-language: a
// compact string description of a family of BIP32 derivation paths, and
// its expansion into a lazy, cancellable stream of concrete paths.
package explorepath

import "context"

// Path is an immutable description of a derivation-path search space: one
// or more absolute base prefixes, a sequence of steps applied after each
// prefix, a wildcard expansion bound, and a sweep flag.
type Path struct {
	basePaths [][]uint32
	steps     []Step
	depth     uint32
	sweep     bool
}

// New parses exprStr and basePathStrs into a Path. An empty basePathStrs
// defaults to the single bare prefix "m", per the data model's default.
// depth bounds "*" wildcard expansion; sweep additionally emits paths for
// every proper prefix of steps.
func New(basePathStrs []string, exprStr string, depth uint32, sweep bool) (*Path, error) {
	steps, err := ParseSteps(exprStr, depth)
	if err != nil {
		return nil, err
	}

	var basePaths [][]uint32
	if len(basePathStrs) == 0 {
		basePaths = [][]uint32{{}}
	} else {
		basePaths = make([][]uint32, 0, len(basePathStrs))
		for _, s := range basePathStrs {
			p, err := ParseBasePath(s)
			if err != nil {
				return nil, err
			}
			basePaths = append(basePaths, p)
		}
	}

	return &Path{basePaths: basePaths, steps: steps, depth: depth, sweep: sweep}, nil
}

// Size returns the exact number of distinct paths Iter produces, without
// enumerating them.
func (p *Path) Size() uint64 {
	if !p.sweep {
		total := uint64(1)
		for _, st := range p.steps {
			total *= uint64(st.NumChildren())
		}
		return total * uint64(len(p.basePaths))
	}
	var sum uint64
	for i := 0; i <= len(p.steps); i++ {
		prod := uint64(1)
		for _, st := range p.steps[:i] {
			prod *= uint64(st.NumChildren())
		}
		sum += prod
	}
	return sum * uint64(len(p.basePaths))
}

// Iter returns a channel that produces every concrete derivation path in
// this Path's search space, in the enumeration order specified by the
// mini-language (base paths outer, steps inner Cartesian product,
// hardened-before-normal within a HardenedAndNormal step; sweep mode
// additionally walks every proper step-prefix before the full sequence).
// The channel is closed when enumeration completes or ctx is cancelled;
// no partial path is ever sent.
func (p *Path) Iter(ctx context.Context) <-chan []uint32 {
	out := make(chan []uint32)
	go func() {
		defer close(out)

		var prefixLens []int
		if p.sweep {
			prefixLens = make([]int, len(p.steps)+1)
			for i := range prefixLens {
				prefixLens[i] = i
			}
		} else {
			prefixLens = []int{len(p.steps)}
		}

		for _, base := range p.basePaths {
			for _, l := range prefixLens {
				if !emit(ctx, out, base, p.steps[:l], nil) {
					return
				}
			}
		}
	}()
	return out
}

// emit walks steps depth-first, sending one completed path (base+prefix)
// per leaf. It returns false if ctx was cancelled mid-walk.
func emit(ctx context.Context, out chan<- []uint32, base []uint32, steps []Step, prefix []uint32) bool {
	if len(steps) == 0 {
		full := make([]uint32, len(base)+len(prefix))
		copy(full, base)
		copy(full[len(base):], prefix)
		select {
		case out <- full:
			return true
		case <-ctx.Done():
			return false
		}
	}
	st := steps[0]
	n := st.NumChildren()
	for i := uint32(0); i < n; i++ {
		if !emit(ctx, out, base, steps[1:], append(prefix, st.ValueAt(i))) {
			return false
		}
	}
	return true
}
