// Package dump decodes the binary UTXO snapshot file produced by Bitcoin
// Core's dumptxoutset RPC into a stream of individual unspent outputs.
package dump

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var magic = [5]byte{'u', 't', 'x', 'o', 0xff}

const supportedVersion = 2

// Header is the snapshot's fixed-size metadata block.
type Header struct {
	Version        uint16
	NetworkMagic   [4]byte
	BaseBlockHash  chainhash.Hash
	UTXOSetSize    uint64
}

// Record is one decoded unspent output.
type Record struct {
	TxID          chainhash.Hash
	Vout          uint32
	Height         uint32
	Coinbase       bool
	AmountSatoshis uint64
	ScriptPubKey   []byte
}

// Reader streams Records out of a snapshot file in the order they were
// written: grouped by transaction id, each group preceded by its output
// count.
type Reader struct {
	r      *bufio.Reader
	Header Header

	txID        chainhash.Hash
	outputsLeft uint64
}

// NewReader parses the header from r and returns a Reader positioned at
// the first record.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 1<<20)

	var gotMagic [5]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, err
	}
	if gotMagic != magic {
		return nil, ErrBadMagic
	}

	var version uint16
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != supportedVersion {
		return nil, ErrUnsupportedVersion
	}

	var hdr Header
	hdr.Version = version
	if _, err := io.ReadFull(br, hdr.NetworkMagic[:]); err != nil {
		return nil, err
	}
	var blockHashBytes [32]byte
	if _, err := io.ReadFull(br, blockHashBytes[:]); err != nil {
		return nil, err
	}
	hdr.BaseBlockHash = chainhash.Hash(blockHashBytes)
	if err := binary.Read(br, binary.LittleEndian, &hdr.UTXOSetSize); err != nil {
		return nil, err
	}

	return &Reader{r: br, Header: hdr}, nil
}

// Next decodes and returns the next Record, or io.EOF when the stream
// ends where a new transaction group would begin. The number of records
// read is not checked against Header.UTXOSetSize.
func (d *Reader) Next() (*Record, error) {
	for d.outputsLeft == 0 {
		var txIDBytes [32]byte
		if _, err := io.ReadFull(d.r, txIDBytes[:]); err != nil {
			return nil, err
		}
		d.txID = chainhash.Hash(txIDBytes)

		n, err := wire.ReadVarInt(d.r, 0)
		if err != nil {
			return nil, err
		}
		d.outputsLeft = n
	}

	vout, err := readCoreVarInt(d.r)
	if err != nil {
		return nil, err
	}
	code, err := readCoreVarInt(d.r)
	if err != nil {
		return nil, err
	}
	height := uint32(code >> 1)
	coinbase := code&1 != 0

	compressedAmount, err := readCoreVarInt(d.r)
	if err != nil {
		return nil, err
	}
	amount := decompressAmount(compressedAmount)

	nSize, err := readCoreVarInt(d.r)
	if err != nil {
		return nil, err
	}
	spk, err := decompressScript(d.r, nSize)
	if err != nil {
		return nil, err
	}

	d.outputsLeft--

	return &Record{
		TxID:           d.txID,
		Vout:           uint32(vout),
		Height:         height,
		Coinbase:       coinbase,
		AmountSatoshis: amount,
		ScriptPubKey:   spk,
	}, nil
}
