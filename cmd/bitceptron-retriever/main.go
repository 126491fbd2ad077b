package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bitceptron/bitceptron-retriever/internal/config"
	"github.com/bitceptron/bitceptron-retriever/internal/retriever"
	"github.com/bitceptron/bitceptron-retriever/internal/rpcclient"
	"github.com/bitceptron/bitceptron-retriever/internal/walletpresets"
)

const version = "0.1.0"

var commonFlags = []cli.Flag{
	&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a YAML config file"},
	&cli.StringFlag{Name: "rpc-url", Usage: "bitcoind RPC host, e.g. 127.0.0.1"},
	&cli.StringFlag{Name: "rpc-port", Usage: "bitcoind RPC port"},
	&cli.StringFlag{Name: "rpc-cookie", Usage: "path to bitcoind's .cookie auth file"},
	&cli.Uint64Flag{Name: "rpc-timeout", Usage: "per-call RPC timeout in seconds"},
	&cli.StringFlag{Name: "mnemonic", Usage: "BIP39 mnemonic phrase"},
	&cli.StringFlag{Name: "passphrase", Usage: "BIP39 passphrase (may be empty)"},
	&cli.StringSliceFlag{Name: "base-path", Usage: "base derivation path, repeatable (defaults to the built-in preset union)"},
	&cli.StringFlag{Name: "exploration-path", Usage: "exploration-path mini-language expression"},
	&cli.UintFlag{Name: "depth", Usage: "wildcard expansion bound for the exploration path"},
	&cli.BoolFlag{Name: "sweep", Usage: "additionally search every proper prefix of the exploration path"},
	&cli.StringFlag{Name: "network", Usage: "mainnet, testnet, signet, or regtest"},
	&cli.StringSliceFlag{Name: "descriptor", Usage: "script template to search, repeatable (defaults to all five)"},
	&cli.StringFlag{Name: "data-dir", Usage: "directory holding (or to receive) utxo_dump.dat"},
}

func main() {
	app := cli.NewApp()
	app.Name = "bitceptron-retriever"
	app.Usage = "recover spendable balances hiding at unswept BIP32 derivation paths"
	app.Version = version

	app.Flags = commonFlags
	app.Action = runRetrieve

	app.Commands = []*cli.Command{
		{
			Name:   "status",
			Usage:  "print the node's current UTXO set summary (gettxoutsetinfo)",
			Flags:  commonFlags,
			Action: runStatus,
		},
		{
			Name:   "presets",
			Usage:  "list the built-in wallet base-path presets",
			Action: runPresets,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settingsFromContext assembles a config.Settings from --config (if any)
// layered under flag overrides, matching the precedence documented in
// internal/config: file/env first, then explicit flags win. The full
// root-pipeline validation is applied, requiring wallet material.
func settingsFromContext(c *cli.Context) (*config.Settings, error) {
	cfg, err := settingsFromContextUnvalidated(c)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// rpcSettingsFromContext is settingsFromContext's counterpart for
// commands that only dial the node and need no wallet material.
func rpcSettingsFromContext(c *cli.Context) (*config.Settings, error) {
	cfg, err := settingsFromContextUnvalidated(c)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateRPC(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func settingsFromContextUnvalidated(c *cli.Context) (*config.Settings, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("rpc-url") {
		cfg.RPCURL = c.String("rpc-url")
	}
	if c.IsSet("rpc-port") {
		cfg.RPCPort = c.String("rpc-port")
	}
	if c.IsSet("rpc-cookie") {
		cfg.RPCCookiePath = c.String("rpc-cookie")
	}
	if c.IsSet("rpc-timeout") {
		cfg.RPCTimeoutSeconds = c.Uint64("rpc-timeout")
	}
	if c.IsSet("mnemonic") {
		cfg.Mnemonic = c.String("mnemonic")
	}
	if c.IsSet("passphrase") {
		cfg.Passphrase = c.String("passphrase")
	}
	if c.IsSet("base-path") {
		cfg.BaseDerivationPaths = c.StringSlice("base-path")
	}
	if c.IsSet("exploration-path") {
		cfg.ExplorationPath = c.String("exploration-path")
	}
	if c.IsSet("depth") {
		cfg.ExplorationDepth = uint32(c.Uint("depth"))
	}
	if c.IsSet("sweep") {
		cfg.Sweep = c.Bool("sweep")
	}
	if c.IsSet("network") {
		cfg.Network = c.String("network")
	}
	if c.IsSet("descriptor") {
		cfg.SelectedDescriptors = c.StringSlice("descriptor")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}

	return cfg, nil
}

func dialRPC(cfg *config.Settings) (*rpcclient.Client, error) {
	user, pass, err := cfg.RPCCookie()
	if err != nil {
		return nil, err
	}
	return rpcclient.New(rpcclient.Config{
		Host:    cfg.RPCHost(),
		User:    user,
		Pass:    pass,
		Timeout: time.Duration(cfg.RPCTimeoutSeconds) * time.Second,
	})
}

// runRetrieve is the root command: the full P1-P4 pipeline against a live
// node, with the console report printed to stdout on success.
func runRetrieve(c *cli.Context) error {
	cfg, err := settingsFromContext(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	rpc, err := dialRPC(cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer rpc.Shutdown()

	r, err := retriever.New(cfg, rpc)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer r.Close()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if err := r.EnsureDump(ctx); err != nil {
		return cli.Exit(fmt.Errorf("ensuring dump file: %w", err), 1)
	}
	if err := r.PopulateSet(ctx); err != nil {
		return cli.Exit(fmt.Errorf("populating utxo set: %w", err), 1)
	}
	if err := r.Search(ctx); err != nil {
		return cli.Exit(fmt.Errorf("searching utxo set: %w", err), 1)
	}
	if err := r.FetchDetails(ctx); err != nil {
		return cli.Exit(fmt.Errorf("fetching details of finds: %w", err), 1)
	}

	return r.PrintDetailedFinds(os.Stdout)
}

// runStatus is a thin gettxoutsetinfo passthrough, a diagnostic that
// needs no wallet material.
func runStatus(c *cli.Context) error {
	cfg, err := rpcSettingsFromContext(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	rpc, err := dialRPC(cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer rpc.Shutdown()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := rpc.GetTxOutSetInfo(ctx)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("Height: %d\n", info.Height)
	fmt.Printf("Best block: %s\n", info.BestBlock)
	fmt.Printf("Transactions: %d\n", info.Transactions)
	fmt.Printf("Unspent outputs: %d\n", info.TxOuts)
	fmt.Printf("Total amount (BTC): %.8f\n", info.TotalAmount)
	return nil
}

// runPresets lists every built-in wallet preset and its base paths.
func runPresets(c *cli.Context) error {
	for _, name := range walletpresets.Names() {
		paths := walletpresets.Presets[name]
		if len(paths) == 0 {
			fmt.Printf("%s: (no base path)\n", name)
			continue
		}
		fmt.Printf("%s:\n", name)
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
