package walletpresets

import "testing"

func TestColdcardPresetsMatchDocumentedPaths(t *testing.T) {
	cases := map[string]map[string]bool{
		"ColdCardMk1": {"m/44'/0'/0'": true, "m/48'/0'/0'": true, "m/49'/0'/0'": true, "m/84'/0'/0'": true},
		"ColdCardMk2": {"m/44'/0'/0'": true, "m/48'/0'/0'": true, "m/84'/0'/0'": true},
		"ColdCardMk3": {"m/44'/0'/0'": true, "m/48'/0'/0'": true, "m/84'/0'/0'": true},
		"ColdCardMk4": {"m/44'/0'/0'": true, "m/48'/0'/0'": true, "m/84'/0'/0'": true},
	}
	for name, want := range cases {
		got := Presets[name]
		if len(got) != len(want) {
			t.Fatalf("%s: got %v, want keys %v", name, got, want)
		}
		for _, p := range got {
			if !want[p] {
				t.Errorf("%s: unexpected path %q", name, p)
			}
		}
	}
}

func TestSeedSignerPreset(t *testing.T) {
	got := Presets["SeedSigner"]
	want := map[string]bool{"m/48'/0'/0'/2'": true, "m/84'/0'/0'": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys %v", got, want)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q in SeedSigner preset", p)
		}
	}
}

func TestKoinKeepHardwareWalletPreset(t *testing.T) {
	got := Presets["KoinKeepHardwareWallet"]
	if len(got) != 1 || got[0] != "m/44'/0'/1'" {
		t.Fatalf("got %v, want [m/44'/0'/1']", got)
	}
}

func TestCasaPreset(t *testing.T) {
	got := Presets["Casa"]
	if len(got) != 1 || got[0] != "m/49/0" {
		t.Fatalf("got %v, want [m/49/0]", got)
	}
}

func TestJoinMarketLegacyPresetIsUnhardened(t *testing.T) {
	got := Presets["JoinMarketLegacy"]
	if len(got) != 1 || got[0] != "m/0" {
		t.Fatalf("got %v, want [m/0]", got)
	}
}

func TestBisqPreset(t *testing.T) {
	got := Presets["Bisq"]
	want := map[string]bool{"m/44'/0'/0'": true, "m/44'/0'/1'": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys %v", got, want)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q in Bisq preset", p)
		}
	}
}

func TestPassportPreset(t *testing.T) {
	got := Presets["Passport"]
	want := map[string]bool{"m/48'/0'/0'/2'": true, "m/84'/0'/0'": true, "m/84'/0'/2147483646'": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys %v", got, want)
	}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q in Passport preset", p)
		}
	}
}

func TestBitcoinCorePreset(t *testing.T) {
	got := Presets["BitcoinCore"]
	if len(got) != 1 || got[0] != "m/0'/0'" {
		t.Fatalf("got %v, want [m/0'/0']", got)
	}
}

func TestWasabiPreset(t *testing.T) {
	got := Presets["Wasabi"]
	want := map[string]bool{"m/84'/0'/0'": true, "m/86'/0'/0'": true}
	for _, p := range got {
		if !want[p] {
			t.Errorf("unexpected path %q in Wasabi preset", p)
		}
	}
}

func TestAllBasePathsDeduplicatesOnExactEqualityOnly(t *testing.T) {
	all := AllBasePaths()

	seen := make(map[string]int)
	for _, p := range all {
		seen[p]++
		if seen[p] > 1 {
			t.Fatalf("path %q appears more than once in AllBasePaths", p)
		}
	}

	if seen["m/44'/0'/0'"] == 0 {
		t.Fatal("expected m/44'/0'/0' (used by many presets) to appear exactly once")
	}
	// Presence of both a path and a longer path that contains it as a
	// prefix is expected and must NOT be collapsed.
	if seen["m/44'/0'"] == 0 || seen["m/44'/0'/0'"] == 0 {
		t.Fatal("expected both m/44'/0' and its extension m/44'/0'/0' to survive dedup")
	}
}

func TestAllBasePathsNonEmpty(t *testing.T) {
	all := AllBasePaths()
	if len(all) == 0 {
		t.Fatal("expected a non-empty union of preset paths")
	}
}

func TestNamesIncludesEveryPreset(t *testing.T) {
	names := Names()
	if len(names) != len(Presets) {
		t.Fatalf("got %d names, want %d", len(names), len(Presets))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted at index %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestOpendimeHasNoPaths(t *testing.T) {
	if len(Presets["Opendime"]) != 0 {
		t.Fatalf("expected Opendime to map to no paths, got %v", Presets["Opendime"])
	}
}
