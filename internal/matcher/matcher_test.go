package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitceptron/bitceptron-retriever/internal/explorepath"
	"github.com/bitceptron/bitceptron-retriever/internal/keyderiver"
	"github.com/bitceptron/bitceptron-retriever/internal/scriptbuilder"
	"github.com/bitceptron/bitceptron-retriever/internal/uspkset"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestRunFindsKnownPath(t *testing.T) {
	kd, err := keyderiver.New(testMnemonic, "", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer kd.Close()

	targetPath := []uint32{explorepath.HardenedKeyStart + 84, explorepath.HardenedKeyStart, explorepath.HardenedKeyStart, 0, 3}
	pub, err := kd.DerivePubKey(targetPath)
	if err != nil {
		t.Fatal(err)
	}
	selected := map[scriptbuilder.Descriptor]bool{scriptbuilder.P2WPKH: true}
	scripts, err := scriptbuilder.Build(pub, &chaincfg.MainNetParams, selected)
	if err != nil {
		t.Fatal(err)
	}

	set := uspkset.New()
	seedSetWithScripts(t, set, [][]byte{scripts[scriptbuilder.P2WPKH]})

	space, err := explorepath.New([]string{"m/84'/0'/0'"}, "0/..5", 10, false)
	if err != nil {
		t.Fatal(err)
	}

	finds, err := Run(context.Background(), space, kd, &chaincfg.MainNetParams, selected, set, Options{Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(finds) != 1 {
		t.Fatalf("got %d finds, want 1", len(finds))
	}
	if finds[0].Descriptor != scriptbuilder.P2WPKH {
		t.Errorf("descriptor = %v, want P2WPKH", finds[0].Descriptor)
	}
	gotPath := finds[0].Path
	if len(gotPath) != len(targetPath) {
		t.Fatalf("path length = %d, want %d", len(gotPath), len(targetPath))
	}
	for i := range targetPath {
		if gotPath[i] != targetPath[i] {
			t.Errorf("path[%d] = %d, want %d", i, gotPath[i], targetPath[i])
		}
	}
}

func TestRunNoHits(t *testing.T) {
	kd, err := keyderiver.New(testMnemonic, "", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer kd.Close()

	set := uspkset.New()
	seedSetWithScripts(t, set, nil)

	space, err := explorepath.New([]string{"m/84'/0'/0'"}, "0/..3", 10, false)
	if err != nil {
		t.Fatal(err)
	}
	selected := map[scriptbuilder.Descriptor]bool{scriptbuilder.P2WPKH: true}

	finds, err := Run(context.Background(), space, kd, &chaincfg.MainNetParams, selected, set, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(finds) != 0 {
		t.Fatalf("got %d finds, want 0", len(finds))
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	kd, err := keyderiver.New(testMnemonic, "", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	defer kd.Close()

	set := uspkset.New()
	seedSetWithScripts(t, set, nil)

	space, err := explorepath.New(nil, "*a/*a/*a/*a", 30, false)
	if err != nil {
		t.Fatal(err)
	}
	selected := map[scriptbuilder.Descriptor]bool{scriptbuilder.P2WPKH: true}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Millisecond)
	defer cancel()

	_, err = Run(ctx, space, kd, &chaincfg.MainNetParams, selected, set, Options{Workers: 1})
	if err != ErrCancelled {
		t.Fatalf("got %v, want ErrCancelled", err)
	}
}
