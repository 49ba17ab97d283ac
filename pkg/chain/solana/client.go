// Package solana provides the RPC reads needed to quote SPL tokens.
package solana

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/client"
)

// SPL mint account layout: decimals is the u8 at offset 44, after the
// mint authority option (4), authority (32) and supply (8).
const mintDecimalsOffset = 44

// Client wraps a Solana RPC connection for mint metadata reads.
type Client struct {
	rpc *client.Client
}

// New creates a client for the given RPC endpoint.
func New(rpcURL string) *Client {
	return &Client{rpc: client.NewClient(rpcURL)}
}

// MintDecimals reads the decimals of an SPL mint account.
func (c *Client) MintDecimals(ctx context.Context, mint string) (int, error) {
	info, err := c.rpc.GetAccountInfo(ctx, mint)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAccountFetch, err)
	}
	if len(info.Data) <= mintDecimalsOffset {
		return 0, fmt.Errorf("%w: %s", ErrNotAMint, mint)
	}
	return int(info.Data[mintDecimalsOffset]), nil
}
