package contracts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	SimpleTokenName = "SimpleToken"
	SimplePoolName  = "SimplePool"

	MethodApprove     = "approve"
	MethodTransfer    = "transfer"
	MethodBalanceOf   = "balanceOf"
	MethodTotalSupply = "totalSupply"
	MethodDecimals    = "decimals"
	MethodMint        = "mint"
	MethodSwap        = "swap"
)

var (
	//go:embed abi/SimpleToken.json
	simpleTokenABI []byte

	//go:embed abi/SimplePool.json
	simplePoolABI []byte
)

var embedded = Set{
	Token: mustEmbeddedArtifact(SimpleTokenName, simpleTokenABI),
	Pool:  mustEmbeddedArtifact(SimplePoolName, simplePoolABI),
}

// Set pairs the token and pool artifacts used by one deployment.
type Set struct {
	Token Artifact
	Pool  Artifact
}

// Deployable reports whether both artifacts carry bytecode.
func (set Set) Deployable() bool {
	return set.Token.Deployable() && set.Pool.Deployable()
}

// Embedded returns the interface-only artifacts compiled into the SDK.
func Embedded() Set {
	return embedded
}

// SimpleToken returns the embedded token interface.
func SimpleToken() Artifact {
	return embedded.Token
}

// SimplePool returns the embedded pool interface.
func SimplePool() Artifact {
	return embedded.Pool
}

// RequireMethods returns an error naming every method missing from the ABI.
func RequireMethods(artifact Artifact, methods ...string) error {
	missing := make([]string, 0)
	for _, method := range methods {
		if _, ok := artifact.ABI.Methods[method]; !ok {
			missing = append(missing, method)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s ABI is missing methods: %s", artifact.ContractName, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateToken checks that an artifact exposes the token surface.
func ValidateToken(artifact Artifact) error {
	if err := RequireMethods(artifact, MethodApprove, MethodTransfer, MethodBalanceOf); err != nil {
		return err
	}
	return requireConstructorInputs(artifact, "string", "string", "uint256")
}

// ValidatePool checks that an artifact exposes the pool surface.
func ValidatePool(artifact Artifact) error {
	if err := RequireMethods(artifact, MethodMint, MethodSwap); err != nil {
		return err
	}
	return requireConstructorInputs(artifact, "address", "address", "string", "string")
}

func requireConstructorInputs(artifact Artifact, types ...string) error {
	inputs := artifact.ABI.Constructor.Inputs
	if len(inputs) != len(types) {
		return fmt.Errorf(
			"%s constructor takes %d arguments, expected %d",
			artifact.ContractName,
			len(inputs),
			len(types),
		)
	}
	for index, input := range inputs {
		if input.Type.String() != types[index] {
			return fmt.Errorf(
				"%s constructor argument %d is %s, expected %s",
				artifact.ContractName,
				index,
				input.Type.String(),
				types[index],
			)
		}
	}
	return nil
}

func mustEmbeddedArtifact(name string, raw []byte) Artifact {
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("embedded %s ABI is invalid: %v", name, err))
	}
	return Artifact{ContractName: name, ABI: parsed}
}
