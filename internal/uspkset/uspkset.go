// Package uspkset holds the full set of unspent script pubkeys from a
// Bitcoin Core UTXO snapshot in memory, so that candidate scripts derived
// during a search can be tested for membership with a single map lookup.
package uspkset

import (
	"errors"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/bitceptron/bitceptron-retriever/internal/uspkset/dump"
)

type state int32

const (
	stateEmpty state = iota
	statePopulating
	statePopulated
)

// Set is a Empty/Populating/Populated state machine wrapping a script
// pubkey membership set. The zero value is ready to use.
type Set struct {
	state   atomic.Int32
	entries map[string]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// PopulateFromFile decodes every record in the snapshot file at path and
// builds the membership set from their script pubkeys. It succeeds at
// most once per Set; concurrent or repeat calls return
// ErrPopulatingInProgress / ErrAlreadyPopulated without touching the set.
// A call that fails returns the set to Empty.
func (s *Set) PopulateFromFile(path string) error {
	if !s.state.CompareAndSwap(int32(stateEmpty), int32(statePopulating)) {
		switch state(s.state.Load()) {
		case statePopulating:
			return ErrPopulatingInProgress
		default:
			return ErrAlreadyPopulated
		}
	}
	done := false
	defer func() {
		if !done {
			s.state.Store(int32(stateEmpty))
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := dump.NewReader(f)
	if err != nil {
		return err
	}

	entries := make(map[string]struct{}, r.Header.UTXOSetSize)

	const stepSize = 100_000
	start := time.Now()
	stepStart := start
	var recordsDone uint64
	var avgStepNanos float64

	for {
		rec, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		entries[string(rec.ScriptPubKey)] = struct{}{}
		recordsDone++

		if recordsDone%stepSize == 0 {
			elapsed := time.Since(stepStart)
			steps := recordsDone / stepSize
			avgStepNanos = (avgStepNanos*float64(steps-1) + float64(elapsed)) / float64(steps)
			remaining := r.Header.UTXOSetSize/stepSize - steps
			eta := time.Duration(avgStepNanos*float64(remaining)) * time.Nanosecond
			log.Printf("[USPKSet] scripts loaded: %d of %d, ETA ~%.0f min", recordsDone, r.Header.UTXOSetSize, eta.Minutes())
			stepStart = time.Now()
		}
	}

	log.Printf("[USPKSet] loaded %d scripts in %s", recordsDone, time.Since(start).Round(time.Second))

	s.entries = entries
	s.state.Store(int32(statePopulated))
	done = true
	return nil
}

// Contains reports whether spk is present in the set.
func (s *Set) Contains(spk []byte) (bool, error) {
	if state(s.state.Load()) != statePopulated {
		return false, ErrNotPopulated
	}
	_, ok := s.entries[string(spk)]
	return ok, nil
}

// Len returns the number of distinct script pubkeys held, or 0 before
// population completes.
func (s *Set) Len() int {
	return len(s.entries)
}

// Populated reports whether the set has finished populating.
func (s *Set) Populated() bool {
	return state(s.state.Load()) == statePopulated
}
