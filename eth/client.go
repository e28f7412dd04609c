package eth

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// RPC is the slice of the JSON-RPC surface the client consumes.
// *ethclient.Client satisfies it; tests plug in fakes.
type RPC interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// mockBalance is the synthetic reading returned when the RPC node is
// unreachable. The label keeps it distinguishable from a real balance.
const mockBalance = "1.2345 ETH (mock data, RPC unavailable)"

// Client wraps a JSON-RPC endpoint with balance queries and the signed
// transfer pipeline, resolving keys from the wallet registry.
type Client struct {
	rpc            RPC
	wallet         *Wallet
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

type ClientOption func(*Client)

// WithConfirmTimeout overrides how long Send waits for one confirmation.
func WithConfirmTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.confirmTimeout = d }
}

// WithPollInterval overrides the receipt polling cadence.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.pollInterval = d }
}

func NewClient(rpc RPC, wallet *Wallet, opts ...ClientOption) *Client {
	c := &Client{
		rpc:            rpc,
		wallet:         wallet,
		confirmTimeout: 60 * time.Second,
		pollInterval:   2 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Dial connects to a JSON-RPC endpoint and wraps it in a Client.
func Dial(url string, wallet *Wallet, opts ...ClientOption) (*Client, error) {
	rpc, err := ethclient.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(rpc, wallet, opts...), nil
}

// Balance returns a human-readable balance for the address. Invalid address
// formats fail before any network call. An RPC failure degrades to a clearly
// labeled mock value so the conversation does not dead-end on an outage.
func (c *Client) Balance(ctx context.Context, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("Invalid Ethereum address format: %s", address)
	}
	wei, err := c.rpc.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		slog.Warn("balance query failed, returning mock data", "address", address, "error", err)
		return mockBalance, nil
	}
	return WeiToEther(wei) + " ETH", nil
}
