package dump

import "errors"

var (
	// ErrBadMagic is returned when a file does not start with the
	// expected UTXO snapshot magic bytes.
	ErrBadMagic = errors.New("dump: not a utxo snapshot file")

	// ErrUnsupportedVersion is returned for a snapshot format version
	// this decoder does not understand.
	ErrUnsupportedVersion = errors.New("dump: unsupported snapshot version")

	// ErrVarIntOverflow guards against a malformed or truncated file
	// driving the hand-rolled varint decoder past uint64 range.
	ErrVarIntOverflow = errors.New("dump: varint overflow")

	// ErrBadScriptCompression is returned when a compressed script's
	// size tag names an unrecognized special encoding.
	ErrBadScriptCompression = errors.New("dump: unrecognized script compression tag")
)
