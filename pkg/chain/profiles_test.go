package chain

import (
	"errors"
	"testing"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
)

func TestNewSet_Builtins(t *testing.T) {
	set, err := NewSet(nil, IDEthereum)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	for _, id := range []int64{IDEthereum, IDBSC, IDPolygon, IDArbitrum, IDBase, IDSolana} {
		p, err := set.Get(id)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", id, err)
		}
		if p.RPCURL == "" {
			t.Errorf("chain %d missing RPC URL", id)
		}
		if p.Stable == "" || p.StableDecimals == 0 {
			t.Errorf("chain %d missing stable reference", id)
		}
	}

	if p := set.Default(); p.ID != IDEthereum {
		t.Errorf("Default returned chain %d", p.ID)
	}
}

func TestNewSet_Override(t *testing.T) {
	set, err := NewSet([]config.ChainConfig{
		{ID: IDEthereum, RPCURL: "http://localhost:8545"},
	}, IDEthereum)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	p, err := set.Get(IDEthereum)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.RPCURL != "http://localhost:8545" {
		t.Errorf("override not applied, got %q", p.RPCURL)
	}
	// Untouched fields keep their built-in values
	if p.StableSymbol != "USDC" {
		t.Errorf("override clobbered stable symbol: %q", p.StableSymbol)
	}
}

func TestSet_Resolve(t *testing.T) {
	set, err := NewSet(nil, IDBSC)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	p, err := set.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve(0) failed: %v", err)
	}
	if p.ID != IDBSC {
		t.Errorf("Resolve(0) returned chain %d, want default %d", p.ID, IDBSC)
	}

	if _, err := set.Resolve(31337); !errors.Is(err, ErrUnknownChain) {
		t.Errorf("Resolve(31337) error = %v, want ErrUnknownChain", err)
	}
}

func TestProfile_IsEVM(t *testing.T) {
	set, _ := NewSet(nil, IDEthereum)

	eth, _ := set.Get(IDEthereum)
	if !eth.IsEVM() {
		t.Error("Ethereum profile should be EVM")
	}
	sol, _ := set.Get(IDSolana)
	if sol.IsEVM() {
		t.Error("Solana profile should not be EVM")
	}
}
