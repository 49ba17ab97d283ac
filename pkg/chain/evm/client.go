// Package evm provides shared JSON-RPC plumbing for on-chain contract reads.
package evm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/David200308/crypto-price-mcp-server/pkg/chain"
)

// Client wraps an ethclient connection for read-only contract calls.
type Client struct {
	eth *ethclient.Client
}

// Dial connects a client to an EVM JSON-RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return &Client{eth: eth}, nil
}

// Call executes a read-only contract call and returns the unpacked
// method outputs in declaration order.
func (c *Client) Call(ctx context.Context, to common.Address, contractABI abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil) // nil = latest block
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	// An address with no code returns empty data
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: %s on %s", ErrEmptyResult, method, to.Hex())
	}

	out, err := contractABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	return out, nil
}

// TokenDecimals reads the decimals value of an ERC-20 token.
func (c *Client) TokenDecimals(ctx context.Context, token common.Address) (int, error) {
	out, err := c.Call(ctx, token, erc20ABI, "decimals")
	if err != nil {
		return 0, err
	}
	dec, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: decimals", ErrBadResultType)
	}
	return int(dec), nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// Dialer hands out one shared client per chain, dialed on first use.
// Safe for concurrent use.
type Dialer struct {
	chains  *chain.Set
	mu      sync.Mutex
	clients map[int64]*Client
}

// NewDialer creates a dialer over the configured chain profiles.
func NewDialer(chains *chain.Set) *Dialer {
	return &Dialer{chains: chains, clients: make(map[int64]*Client)}
}

// Client returns the shared client for a chain, dialing it when needed.
func (d *Dialer) Client(ctx context.Context, chainID int64) (*Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clients[chainID]; ok {
		return c, nil
	}

	profile, err := d.chains.Get(chainID)
	if err != nil {
		return nil, err
	}
	if !profile.IsEVM() {
		return nil, fmt.Errorf("%w: chain %d", chain.ErrNotEVM, chainID)
	}

	c, err := Dial(ctx, profile.RPCURL)
	if err != nil {
		return nil, err
	}
	d.clients[chainID] = c
	return c, nil
}

// Close releases every dialed client.
func (d *Dialer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, c := range d.clients {
		c.Close()
		delete(d.clients, id)
	}
}
