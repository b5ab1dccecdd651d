package contracts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const tokenABIJSON = `[
	{"type":"constructor","inputs":[{"name":"n","type":"string"},{"name":"s","type":"string"},{"name":"supply","type":"uint256"}]},
	{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"a","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const poolABIJSON = `[
	{"type":"constructor","inputs":[{"name":"a","type":"address"},{"name":"b","type":"address"},{"name":"n","type":"string"},{"name":"s","type":"string"}]},
	{"type":"function","name":"mint","inputs":[{"name":"to","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"swap","inputs":[{"name":"t","type":"address"},{"name":"a","type":"uint256"},{"name":"to","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestParseArtifactHardhat(t *testing.T) {
	artifact, err := ParseArtifact([]byte(`{
		"_format": "hh-sol-artifact-1",
		"contractName": "SimpleToken",
		"abi": ` + tokenABIJSON + `,
		"bytecode": "0x6001600055",
		"deployedBytecode": "0x00"
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.ContractName != "SimpleToken" {
		t.Fatalf("unexpected name %q", artifact.ContractName)
	}
	if len(artifact.Bytecode) != 5 || artifact.Bytecode[0] != 0x60 {
		t.Fatalf("unexpected bytecode %x", artifact.Bytecode)
	}
	if !artifact.Deployable() {
		t.Fatal("expected deployable artifact")
	}
}

func TestParseArtifactFoundry(t *testing.T) {
	artifact, err := ParseArtifact([]byte(`{
		"abi": ` + poolABIJSON + `,
		"bytecode": {"object": "0x60016000", "sourceMap": ""}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(artifact.Bytecode) != 4 {
		t.Fatalf("unexpected bytecode %x", artifact.Bytecode)
	}
}

func TestParseArtifactInterfaceHasNoBytecode(t *testing.T) {
	artifact, err := ParseArtifact([]byte(`{"contractName":"IToken","abi":[],"bytecode":"0x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.Deployable() {
		t.Fatal("expected non-deployable artifact")
	}
}

func TestParseArtifactErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json": `{`,
		"missing abi":  `{"bytecode":"0x00"}`,
		"bad abi":      `{"abi":{"not":"a list"}}`,
		"bad hex":      `{"abi":[],"bytecode":"0xzz"}`,
		"unlinked":     `{"abi":[],"bytecode":"0x60__$abcdef$__60"}`,
		"bad bytecode": `{"abi":[],"bytecode":42}`,
	}
	for name, data := range cases {
		if _, err := ParseArtifact([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadArtifactNameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "SimplePool.sol", "SimplePool.json")
	writeFile(t, path, `{"abi":`+poolABIJSON+`,"bytecode":{"object":"0x00"}}`)

	artifact, err := LoadArtifact(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.ContractName != "SimplePool" {
		t.Fatalf("expected name from file, got %q", artifact.ContractName)
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	if _, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFindArtifactSkipsDebugAndBuildInfo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "build-info", "SimpleToken.json"), `{}`)
	writeFile(t, filepath.Join(root, "contracts", "SimpleToken.sol", "SimpleToken.dbg.json"), `{}`)
	want := filepath.Join(root, "contracts", "SimpleToken.sol", "SimpleToken.json")
	writeFile(t, want, `{}`)

	got, err := FindArtifact(root, "SimpleToken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFindArtifactNotFound(t *testing.T) {
	_, err := FindArtifact(t.TempDir(), "SimplePool")
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Fatalf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestLoadSetHardhatLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "contracts", "SimpleToken.sol", "SimpleToken.json"),
		`{"contractName":"SimpleToken","abi":`+tokenABIJSON+`,"bytecode":"0x6000"}`)
	writeFile(t, filepath.Join(root, "contracts", "SimplePool.sol", "SimplePool.json"),
		`{"contractName":"SimplePool","abi":`+poolABIJSON+`,"bytecode":"0x6001"}`)

	set, err := LoadSet(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Deployable() {
		t.Fatal("expected deployable set")
	}
}

func TestLoadSetRejectsWrongSurface(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "SimpleToken.json"),
		`{"contractName":"SimpleToken","abi":`+poolABIJSON+`,"bytecode":"0x6000"}`)

	if _, err := LoadSet(root); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadSetEmptyRootUsesEmbedded(t *testing.T) {
	set, err := LoadSet("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Deployable() {
		t.Fatal("expected embedded interface-only set")
	}
}
