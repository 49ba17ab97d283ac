package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
)

// IsEVMAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsEVMAddress(s string) bool {
	return common.IsHexAddress(s)
}

// IsSolanaMint reports whether s is a base58-encoded 32-byte key.
func IsSolanaMint(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}

// ValidForChain reports whether address is structurally valid for the
// chain's address format. Resolution does not apply it; callers check
// addresses they care about themselves.
func ValidForChain(address string, chainID int64) bool {
	if chainID == chain.IDSolana {
		return IsSolanaMint(address)
	}
	return IsEVMAddress(address)
}
