package contracts

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// skippedDirs are build outputs that never hold contract artifacts.
var skippedDirs = map[string]bool{
	"build-info":   true,
	"cache":        true,
	"node_modules": true,
}

// Artifact is a contract ABI with optional creation bytecode.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

// Deployable reports whether the artifact carries creation bytecode.
func (artifact Artifact) Deployable() bool {
	return len(artifact.Bytecode) > 0
}

type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type foundryBytecode struct {
	Object string `json:"object"`
}

// ParseArtifact decodes a Hardhat or Foundry artifact. Hardhat stores the
// bytecode as a hex string; Foundry nests it under bytecode.object.
func ParseArtifact(data []byte) (Artifact, error) {
	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Artifact{}, fmt.Errorf("failed to decode artifact: %w", err)
	}
	if len(file.ABI) == 0 {
		return Artifact{}, fmt.Errorf("artifact has no abi")
	}

	parsedABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to parse artifact abi: %w", err)
	}

	bytecode, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		ContractName: file.ContractName,
		ABI:          parsedABI,
		Bytecode:     bytecode,
	}, nil
}

// LoadArtifact reads and parses an artifact file. Artifacts without a
// contractName field take the file name.
func LoadArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	artifact, err := ParseArtifact(data)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	if artifact.ContractName == "" {
		artifact.ContractName = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return artifact, nil
}

// FindArtifact walks root for the artifact of contractName, skipping Hardhat
// debug files and build-info directories.
func FindArtifact(root string, contractName string) (string, error) {
	target := contractName + ".json"
	found := ""

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			if path != root && skippedDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Name() == target {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", root, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s under %s", ErrArtifactNotFound, contractName, root)
	}
	return found, nil
}

// LoadSet loads and validates the SimpleToken and SimplePool artifacts from
// root. An empty root returns the embedded interface-only set.
func LoadSet(root string) (Set, error) {
	if strings.TrimSpace(root) == "" {
		return Embedded(), nil
	}

	token, err := loadNamed(root, SimpleTokenName)
	if err != nil {
		return Set{}, err
	}
	if err := ValidateToken(token); err != nil {
		return Set{}, err
	}

	pool, err := loadNamed(root, SimplePoolName)
	if err != nil {
		return Set{}, err
	}
	if err := ValidatePool(pool); err != nil {
		return Set{}, err
	}

	return Set{Token: token, Pool: pool}, nil
}

func loadNamed(root string, contractName string) (Artifact, error) {
	path, err := FindArtifact(root, contractName)
	if err != nil {
		return Artifact{}, err
	}
	return LoadArtifact(path)
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var encoded string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, fmt.Errorf("failed to decode bytecode: %w", err)
		}
	} else {
		var nested foundryBytecode
		if err := json.Unmarshal(trimmed, &nested); err != nil {
			return nil, fmt.Errorf("failed to decode bytecode: %w", err)
		}
		encoded = nested.Object
	}

	encoded = strings.TrimPrefix(strings.TrimSpace(encoded), "0x")
	if strings.Contains(encoded, "__") {
		return nil, fmt.Errorf("bytecode has unresolved library links")
	}
	if encoded == "" {
		return nil, nil
	}

	bytecode, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex: %w", err)
	}
	return bytecode, nil
}
