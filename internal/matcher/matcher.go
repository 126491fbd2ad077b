// Package matcher streams candidate derivation paths out of an
// explorepath.Path, derives each path's public key and script pubkeys,
// and tests them against a populated uspkset.Set — without ever holding
// more than a bounded number of candidates in memory at once (the relay
// channel's capacity plus one path in flight per worker).
package matcher

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitceptron/bitceptron-retriever/internal/explorepath"
	"github.com/bitceptron/bitceptron-retriever/internal/keyderiver"
	"github.com/bitceptron/bitceptron-retriever/internal/scriptbuilder"
	"github.com/bitceptron/bitceptron-retriever/internal/uspkset"
)

// channelCapacity bounds how many derivation paths may be in flight
// between the producer and the worker pool at once.
const channelCapacity = 1024

// Find is one derivation path whose script pubkey, under one of the
// selected templates, was present in the unspent set.
type Find struct {
	Path         []uint32
	Descriptor   scriptbuilder.Descriptor
	ScriptPubKey []byte
}

// Options configures a Run call.
type Options struct {
	// Workers is the number of concurrent derivation workers. Zero
	// selects runtime.NumCPU().
	Workers int
}

// Run enumerates every path in space, derives its public key via kd, and
// tests the script pubkeys named by selected against set. It returns
// every match found, or ErrCancelled if ctx is cancelled before
// enumeration completes — in which case no partial result is returned.
func Run(ctx context.Context, space *explorepath.Path, kd *keyderiver.KeyDeriver, params *chaincfg.Params, selected map[scriptbuilder.Descriptor]bool, set *uspkset.Set, opts Options) ([]Find, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	paths := bufferedRelay(runCtx, space.Iter(runCtx), channelCapacity)

	var (
		mu       sync.Mutex
		finds    []Find
		checked  atomic.Int64
		firstErr error
	)

	total := space.Size()
	progressDone := make(chan struct{})
	go reportProgress(runCtx, &checked, total, progressDone)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				matches, err := matchOne(kd, params, selected, set, path)
				checked.Add(1)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					continue
				}
				if len(matches) == 0 {
					continue
				}
				mu.Lock()
				finds = append(finds, matches...)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	close(progressDone)

	if firstErr != nil {
		return nil, firstErr
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	return finds, nil
}

// bufferedRelay copies src into a channel of the given capacity, so that
// the producer can run up to capacity ahead of the worker pool instead
// of blocking on every single send.
func bufferedRelay(ctx context.Context, src <-chan []uint32, capacity int) <-chan []uint32 {
	out := make(chan []uint32, capacity)
	go func() {
		defer close(out)
		for p := range src {
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func matchOne(kd *keyderiver.KeyDeriver, params *chaincfg.Params, selected map[scriptbuilder.Descriptor]bool, set *uspkset.Set, path []uint32) ([]Find, error) {
	pub, err := kd.DerivePubKey(path)
	if err != nil {
		return nil, err
	}
	scripts, err := scriptbuilder.Build(pub, params, selected)
	if err != nil {
		return nil, err
	}

	var matches []Find
	for d, spk := range scripts {
		present, err := set.Contains(spk)
		if err != nil {
			return nil, err
		}
		if present {
			pathCopy := make([]uint32, len(path))
			copy(pathCopy, path)
			matches = append(matches, Find{Path: pathCopy, Descriptor: d, ScriptPubKey: spk})
		}
	}
	return matches, nil
}

func reportProgress(ctx context.Context, checked *atomic.Int64, total uint64, done <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			log.Printf("[Matcher] checked %d of %d candidate paths", checked.Load(), total)
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
