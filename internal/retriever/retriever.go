// Package retriever is the four-phase orchestrator tying together
// config, key derivation, script building, the in-memory UTXO set, the
// streaming matcher, and the Bitcoin Core RPC facade into one run:
// ensure a local dump (P1), populate the set from it (P2), search for
// candidate matches (P3), then fetch authoritative balances for
// whatever was found (P4).
package retriever

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bitceptron/bitceptron-retriever/internal/config"
	"github.com/bitceptron/bitceptron-retriever/internal/explorepath"
	"github.com/bitceptron/bitceptron-retriever/internal/keyderiver"
	"github.com/bitceptron/bitceptron-retriever/internal/matcher"
	"github.com/bitceptron/bitceptron-retriever/internal/rpcclient"
	"github.com/bitceptron/bitceptron-retriever/internal/scriptbuilder"
	"github.com/bitceptron/bitceptron-retriever/internal/uspkset"
)

// dumpFileName is the only on-disk artifact the core ever touches.
const dumpFileName = "utxo_dump.dat"

// RPC is the subset of rpcclient.Client's surface the orchestrator
// consumes, narrowed to an interface so tests can supply a stub node.
type RPC interface {
	DumpUtxoSet(ctx context.Context, path string) (*rpcclient.DumpResult, error)
	ScanUtxoSet(ctx context.Context, requests []rpcclient.ScanRequest) ([]rpcclient.ScanResult, error)
}

// DetailedFind pairs a Find with the authoritative scantxoutset result
// for its descriptor, fetched in P4.
type DetailedFind struct {
	Path       []uint32
	Descriptor scriptbuilder.Descriptor
	Result     rpcclient.ScanResult
}

// Retriever owns the UspkSet, the KeyDeriver, and the ExplorationPath
// for one run, and drives P1-P4 in order.
type Retriever struct {
	cfg      *config.Settings
	kd       *keyderiver.KeyDeriver
	space    *explorepath.Path
	selected map[scriptbuilder.Descriptor]bool
	params   *chaincfg.Params
	rpc      RPC

	set   *uspkset.Set
	finds []matcher.Find

	populated      bool
	searched       bool
	detailsFetched bool
	detailedFinds  []DetailedFind
}

// New validates cfg, derives the master key, and parses the exploration
// path, without touching the network or the filesystem yet. rpc may be
// nil for runs that only exercise the local phases (P2/P3) against a
// pre-existing dump file; EnsureDump and FetchDetails then return
// ErrRPCClientRequired if invoked.
func New(cfg *config.Settings, rpc RPC) (*Retriever, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := cfg.NetworkParams()
	if err != nil {
		return nil, err
	}

	selected, err := cfg.SelectedDescriptorSet()
	if err != nil {
		return nil, err
	}

	space, err := explorepath.New(cfg.ResolvedBasePaths(), cfg.ExplorationPath, cfg.ExplorationDepth, cfg.Sweep)
	if err != nil {
		return nil, err
	}

	kd, err := keyderiver.New(cfg.Mnemonic, cfg.Passphrase, params)
	if err != nil {
		return nil, err
	}

	return &Retriever{
		cfg:      cfg,
		kd:       kd,
		space:    space,
		selected: selected,
		params:   params,
		rpc:      rpc,
		set:      uspkset.New(),
	}, nil
}

// Close zeroizes the held master extended key. Safe to call multiple
// times; callers should defer it immediately after New succeeds.
func (r *Retriever) Close() {
	r.kd.Close()
}

func (r *Retriever) dumpPath() string {
	return filepath.Join(r.cfg.DataDir, dumpFileName)
}

// EnsureDump is P1: if <data_dir>/utxo_dump.dat already exists, it is a
// no-op (no RPC call is made). Otherwise it asks the node to write one
// via dumptxoutset.
func (r *Retriever) EnsureDump(ctx context.Context) error {
	path := r.dumpPath()
	if _, err := os.Stat(path); err == nil {
		log.Printf("[Retriever] dump file already present at %s, skipping dumptxoutset", path)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ensure dump: %w", err)
	}

	if r.rpc == nil {
		return ErrRPCClientRequired
	}

	log.Printf("[Retriever] requesting utxo set dump to %s", path)
	if _, err := r.rpc.DumpUtxoSet(ctx, path); err != nil {
		return fmt.Errorf("ensure dump: %w", err)
	}
	return nil
}

// PopulateSet is P2: read the dump file at <data_dir>/utxo_dump.dat
// into the in-memory UspkSet. Requires EnsureDump (or an
// externally-placed dump file) to have run first.
func (r *Retriever) PopulateSet(ctx context.Context) error {
	path := r.dumpPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoDumpFileInDataDir
		}
		return fmt.Errorf("populate set: %w", err)
	}

	if err := r.set.PopulateFromFile(path); err != nil {
		return fmt.Errorf("populate set: %w", err)
	}
	r.populated = true
	return nil
}

// Search is P3: enumerate the exploration path, derive and test every
// candidate's script pubkeys against the populated set. Requires
// PopulateSet to have run first.
func (r *Retriever) Search(ctx context.Context) error {
	if !r.populated {
		return ErrSetNotPopulated
	}

	finds, err := matcher.Run(ctx, r.space, r.kd, r.params, r.selected, r.set, matcher.Options{})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	r.finds = finds
	r.searched = true
	log.Printf("[Retriever] search complete: %d find(s)", len(finds))
	return nil
}

// Finds returns the candidates turned up by Search, or
// ErrNoSearchPerformed if Search has not run yet.
func (r *Retriever) Finds() ([]matcher.Find, error) {
	if !r.searched {
		return nil, ErrNoSearchPerformed
	}
	return r.finds, nil
}

// FetchDetails is P4: for each find, ask the node (via scantxoutset)
// for its authoritative unspent outputs and total amount. A run with
// zero finds logs a notice and succeeds without contacting the node.
func (r *Retriever) FetchDetails(ctx context.Context) error {
	if !r.searched {
		return ErrNoSearchPerformed
	}

	if len(r.finds) == 0 {
		log.Printf("[Retriever] no finds to fetch details for")
		r.detailsFetched = true
		r.detailedFinds = nil
		return nil
	}

	if r.rpc == nil {
		return ErrRPCClientRequired
	}

	requests := make([]rpcclient.ScanRequest, len(r.finds))
	for i, f := range r.finds {
		desc, err := r.descriptorFor(f)
		if err != nil {
			return fmt.Errorf("fetch details: %w", err)
		}
		requests[i] = rpcclient.ScanRequest{Path: explorepath.FormatPath(f.Path), Descriptor: desc}
	}

	results, err := r.rpc.ScanUtxoSet(ctx, requests)
	if err != nil {
		return fmt.Errorf("fetch details: %w", err)
	}
	if len(results) != len(r.finds) {
		return fmt.Errorf("fetch details: got %d results for %d requests", len(results), len(r.finds))
	}

	detailed := make([]DetailedFind, len(r.finds))
	for i, f := range r.finds {
		detailed[i] = DetailedFind{Path: f.Path, Descriptor: f.Descriptor, Result: results[i]}
	}
	r.detailedFinds = detailed
	r.detailsFetched = true
	return nil
}

// DetailedFinds returns the results of FetchDetails, or
// ErrDetailsNotFetched if it has not run yet.
func (r *Retriever) DetailedFinds() ([]DetailedFind, error) {
	if !r.detailsFetched {
		return nil, ErrDetailsNotFetched
	}
	return r.detailedFinds, nil
}

// PrintDetailedFinds writes the P4 console report to w, in the format:
//
//	Result <i>
//	Path: <derivation_path>
//	Amount(satoshis): <locale-formatted integer>
//	Descriptor: <descriptor-string>
func (r *Retriever) PrintDetailedFinds(w io.Writer) error {
	if !r.detailsFetched {
		return ErrDetailsNotFetched
	}
	if len(r.detailedFinds) == 0 {
		fmt.Fprintln(w, "No finds to report.")
		return nil
	}

	printer := message.NewPrinter(language.English)
	for i, d := range r.detailedFinds {
		satoshis := int64(math.Round(d.Result.TotalAmount * 1e8))
		fmt.Fprintf(w, "Result %d\n", i+1)
		fmt.Fprintf(w, "Path: %s\n", explorepath.FormatPath(d.Path))
		fmt.Fprintf(w, "Amount(satoshis): %s\n", printer.Sprintf("%d", satoshis))
		fmt.Fprintf(w, "Descriptor: %s\n", d.Descriptor)
	}
	return nil
}

// descriptorFor re-derives the public key for f.Path and renders it as
// the single-key descriptor string scantxoutset expects for f's
// template. The checksum suffix is deliberately omitted: Bitcoin Core
// computes and validates it automatically when absent.
func (r *Retriever) descriptorFor(f matcher.Find) (string, error) {
	pub, err := r.kd.DerivePubKey(f.Path)
	if err != nil {
		return "", err
	}
	hexKey := hex.EncodeToString(pub.SerializeCompressed())

	switch f.Descriptor {
	case scriptbuilder.P2PK:
		return fmt.Sprintf("pk(%s)", hexKey), nil
	case scriptbuilder.P2PKH:
		return fmt.Sprintf("pkh(%s)", hexKey), nil
	case scriptbuilder.P2WPKH:
		return fmt.Sprintf("wpkh(%s)", hexKey), nil
	case scriptbuilder.P2SHP2WPKH:
		return fmt.Sprintf("sh(wpkh(%s))", hexKey), nil
	case scriptbuilder.P2TR:
		return fmt.Sprintf("tr(%s)", hex.EncodeToString(schnorr.SerializePubKey(pub))), nil
	default:
		return "", fmt.Errorf("retriever: unknown descriptor %v", f.Descriptor)
	}
}
