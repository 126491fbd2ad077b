package explorepath

import (
	"regexp"
	"strconv"
	"strings"
)

// admissibleChars matches the full set of characters the mini-language
// permits anywhere in an exploration-path expression.
var admissibleChars = regexp.MustCompile(`^[0-9./'ha*]+$`)

// rangeStep matches "N", "A..B", with an optional trailing hardness
// suffix. A is optional in the ".." form and defaults to 0.
var rangeStep = regexp.MustCompile(`^[0-9]*(\.\.)?[0-9]+['ha]?$`)

// wildcardStep matches "*" with an optional trailing hardness suffix.
var wildcardStep = regexp.MustCompile(`^\*['ha]?$`)

func hardnessFromSuffix(suffix byte) Hardness {
	switch suffix {
	case '\'', 'h':
		return Hardened
	case 'a':
		return HardenedAndNormal
	default:
		return Normal
	}
}

func splitSuffix(s string) (body string, suffix byte) {
	if len(s) == 0 {
		return s, 0
	}
	last := s[len(s)-1]
	if last == '\'' || last == 'h' || last == 'a' {
		return s[:len(s)-1], last
	}
	return s, 0
}

// parseStep parses one '/'-separated segment of the mini-language into a
// Step, given the wildcard expansion bound depth.
func parseStep(segment string, depth uint32) (Step, error) {
	if wildcardStep.MatchString(segment) {
		_, suffix := splitSuffix(segment)
		return Step{Start: 0, End: depth, Hardness: hardnessFromSuffix(suffix)}, nil
	}
	if !rangeStep.MatchString(segment) {
		return Step{}, ErrInvalidExplorationPath
	}
	body, suffix := splitSuffix(segment)
	hardness := hardnessFromSuffix(suffix)

	if idx := strings.Index(body, ".."); idx >= 0 {
		aStr, bStr := body[:idx], body[idx+2:]
		var a uint64
		var err error
		if aStr != "" {
			a, err = strconv.ParseUint(aStr, 10, 31)
			if err != nil {
				return Step{}, ErrInvalidExplorationPath
			}
		}
		b, err := strconv.ParseUint(bStr, 10, 31)
		if err != nil {
			return Step{}, ErrInvalidExplorationPath
		}
		if b < a {
			return Step{}, ErrInvalidStepRange
		}
		return Step{Start: uint32(a), End: uint32(b), Hardness: hardness}, nil
	}

	n, err := strconv.ParseUint(body, 10, 31)
	if err != nil {
		return Step{}, ErrInvalidExplorationPath
	}
	return Step{Start: uint32(n), End: uint32(n), Hardness: hardness}, nil
}

// ParseSteps parses a full mini-language expression into an ordered list
// of Steps. Empty segments between slashes are discarded; an expression
// with no valid step (including the empty string) is a syntax error.
func ParseSteps(expr string, depth uint32) ([]Step, error) {
	if expr == "" {
		return nil, ErrInvalidExplorationPath
	}
	if !admissibleChars.MatchString(expr) {
		return nil, ErrInvalidExplorationPath
	}
	segments := strings.Split(expr, "/")
	steps := make([]Step, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		st, err := parseStep(seg, depth)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, ErrInvalidExplorationPath
	}
	return steps, nil
}

// ParseBasePath parses an absolute BIP32 path string ("m", "m/44'/0'/0'",
// or the bare "44'/0'/0'" form) into a sequence of hardness-tagged indices.
func ParseBasePath(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "m" {
		return []uint32{}, nil
	}
	s = strings.TrimPrefix(s, "m/")
	s = strings.TrimPrefix(s, "m")
	segments := strings.Split(s, "/")
	path := make([]uint32, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		hardened := false
		if strings.HasSuffix(seg, "'") || strings.HasSuffix(seg, "h") || strings.HasSuffix(seg, "H") {
			hardened = true
			seg = seg[:len(seg)-1]
		}
		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			return nil, ErrInvalidBasePath
		}
		idx := uint32(n)
		if hardened {
			idx += HardenedKeyStart
		}
		path = append(path, idx)
	}
	return path, nil
}

// FormatPath renders an absolute derivation path as its canonical
// "m/44'/0'/0'" string form.
func FormatPath(path []uint32) string {
	var b strings.Builder
	b.WriteByte('m')
	for _, idx := range path {
		b.WriteByte('/')
		if idx >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedKeyStart), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}
