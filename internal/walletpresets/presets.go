// Package walletpresets ships a static table mapping wallet software and
// hardware identifiers to the BIP32 base derivation paths they are
// documented to use, as catalogued at walletsrecovery.org. It exists so
// a forensic search can default to "every path any known wallet would
// have used" when the user does not know (or cannot remember) which
// wallet produced the seed in hand.
package walletpresets

import "sort"

// Presets maps a wallet identifier to its documented base derivation
// paths. Some entries intentionally map to no path (e.g. Opendime,
// BitcoinWalletApp use a single non-HD address and document no BIP32
// path) and are kept for completeness even though they contribute
// nothing to AllBasePaths.
var Presets = map[string][]string{
	// Hardware wallets.
	"AirGapVault":                  {"m/44'/0'/0'", "m/84'/0'/0'"},
	"Arculus":                      {"m/0'"},
	"BitBox01":                     {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"BitBox02":                     {"m/48'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"CoboVault":                    {"m/49'/0'/0'"},
	"Jade":                         {"m/49'/0'/0'", "m/84'/0'/0'"},
	"CoboVaultWithBTCOnlyFirmware": {"m/44'/0'/0'", "m/48'/0'/0'", "m/84'/0'/0'"},
	"ColdCardMk1":                  {"m/44'/0'/0'", "m/48'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"ColdCardMk2":                  {"m/44'/0'/0'", "m/48'/0'/0'", "m/84'/0'/0'"},
	"ColdCardMk3":                  {"m/44'/0'/0'", "m/48'/0'/0'", "m/84'/0'/0'"},
	"ColdCardMk4":                  {"m/44'/0'/0'", "m/48'/0'/0'", "m/84'/0'/0'"},
	"CoolWalletS":                  {"m/44'/0'/0'"},
	"LedgerNanoS":                  {"m/49'/0'/0'", "m/84'/0'/0'"},
	"LedgerNanoX":                  {"m/49'/0'/0'", "m/84'/0'/0'"},
	"Passport":                     {"m/48'/0'/0'/2'", "m/84'/0'/0'", "m/84'/0'/2147483646'"},
	"SeedSigner":                   {"m/48'/0'/0'/2'", "m/84'/0'/0'"},
	"TrezorOne":                    {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"TrezorModelT":                 {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"KeepKey":                      {"m/44'/0'/0'"},
	"KoinKeepHardwareWallet":       {"m/44'/0'/1'"},
	"Krux":                         {"m/48'/0'/0'/2'", "m/84'/0'/0'"},
	"Opendime":                     {},
	"ProkeyOptimum":                {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},

	// Software wallets.
	"AirGapWallet":           {"m/44'/0'/0'", "m/84'/0'/0'"},
	"AtomicWallet":           {"m/44'/0'/0'/0/0"},
	"BitcoinCore":            {"m/0'/0'"},
	"BitcoinWalletApp":       {},
	"Bisq":                   {"m/44'/0'/0'", "m/44'/0'/1'"},
	"Bither":                 {"m/44'/0'/0'", "m/49'/0'/0'"},
	"BlockchainDotCom":       {"m/44'/0'"},
	"BlockstreamGreen":       {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"BlueWallet":             {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"BreadWallet":            {"m/0'"},
	"BTCDotComApp":           {"m/0'"},
	"Casa":                   {"m/49/0"}, // m/49/0/X, X increments with each key rotation
	"CoinWallet":             {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"Coinomi":                {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"Copay":                  {"m/44'/0'"},
	"DropBit":                {"m/49'/0'/0'", "m/84'/0'/0'"},
	"EdgeWallet":             {"m/44'/0'/0'", "m/49'/0'/0'"},
	"Electrum":               {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"Exodus":                 {"m/44'/0'/0'", "m/84'/0'/0'"},
	"FullyNoded":             {"m/84'/0'/0'"},
	"HodlWallet":             {"m/0'"},
	"JaxxLiberty":            {"m/44'/0'/0'"},
	"JoinMarket":             {"m/84'/0'"},
	"JoinMarketLegacy":       {"m/0"},
	"LedgerLive":             {"m/44'/0'/0'", "m/49'/0'/0'"},
	"Luxstack":               {"m/0'"},
	"KeepKeyClient":          {"m/44'/0'/0'"},
	"KoinKeepSoftwareWallet": {"m/44'/0'/0'", "m/44'"}, // m/44'/0'/0' | m/44'/n'/0', n increments per new account
	"MultibitHD":             {"m/0'"},
	"MyceliumAndroid":        {"m/44'/0'", "m/49'/0'", "m/84'/0'"}, // m/44'|49'|84'/0'/n'
	"MyceliumiPhone":         {"m/44'/0'"},                         // m/44'/0'/n'
	"NthKey":                 {"m/48'/0'/0'/2'/0", "m/48'/0'/0'/2'/1"},
	"OpenBazaar":             {"m/44'/0'/0'", "m/44'/1'/0'", "m/44'/133'/0'", "m/44'/145'/0'"},
	"Pine":                   {"m/49'/0'/0'"},
	"Relai":                  {"m/44'/0'/0'", "m/49'/0'/0'/0/0", "m/84'/0'/0'/0/0"},
	"RiseWallet":             {"m/49'/0'/0'"},
	"Samourai": {
		"m/44'/0'/0'", "m/47'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'",
		"m/84'/0'/2147483644'", "m/84'/0'/2147483645'", "m/84'/0'/2147483646'",
		"m/44'/0'/2147483647'", "m/49'/0'/2147483647'", "m/84'/0'/2147483647'",
	},
	"Sparrow":            {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'", "m/86'/0'/0'"},
	"SpecterDesktop":     {"m/49'/0'/0'", "m/84'/0'/0'"},
	"TrezorWebWallet":    {"m/44'/0'/0'", "m/49'/0'/0'"},
	"TrustWallet":        {"m/84'/0'/0'/0/0"},
	"UnchainedCapital":   {"m/45'/0'/0'/0/0"},
	"UnstoppableWallet":  {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"Wasabi":             {"m/84'/0'/0'", "m/86'/0'/0'"},

	// Lightning wallets.
	"BitcoinLightningWallet":   {"m/84'/0'/0'"},
	"SimpleBitcoinWallet":      {"m/0'", "m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"OpenBitcoinWallet":        {"m/0'", "m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"CLightning":               {"m/84'/0'/0'", "m/141'/0'/0'"},
	"EclairMobile":             {"m/49'/0'/0'"},
	"LNDLightningNetworkDaemon": {}, // aezeed, not a BIP32 path
	"BlixtLNDMobileNodeWallet": {"m/84'/0'/0'"},
	"StakenetDEXOpenBeta":      {"m/44'/0'/0'"},
	"MutinyWallet":             {"m/86'/0'/0'"},
	"ZeusLN":                   {"m/86'/0'/0'"},

	// Combo presets: wallets documented as interoperating pairs, listed
	// with the union of both members' base paths.
	"BTCPayServerANDColdcard": {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"ElectrumANDCoboVault":    {"m/49'/0'/0'"},
	"ElectrumANDColdcard":     {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"ElectrumANDLedger":       {"m/44'/0'/0'", "m/49'/0'/0'"},
	"ElectrumANDKeepKey":      {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"ElectrumANDTrezor":       {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'"},
	"WasabiANDColdcard":       {"m/44'/0'/0'", "m/49'/0'/0'", "m/84'/0'/0'", "m/86'/0'/0'"},
}

// AllBasePaths returns the union of every preset's base paths, used as
// the default search space when the operator does not name a specific
// wallet. Deduplication is on exact string equality only: a shorter
// prefix (e.g. "m/44'/0'") that happens to be a prefix of a longer one
// (e.g. "m/44'/0'/0'") is NOT collapsed into it, since the two paths
// derive unrelated (though related-looking) key material — see
// SPEC_FULL.md §9's Open Question decision.
func AllBasePaths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range sortedNames() {
		for _, p := range Presets[name] {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Names returns every preset identifier, sorted, for listing purposes
// (the CLI's "presets" subcommand).
func Names() []string {
	return sortedNames()
}

func sortedNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
