package eth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// OutcomeStatus enumerates the terminal states of a submitted transfer.
type OutcomeStatus string

const (
	// StatusConfirmed: the transaction was included in a block.
	StatusConfirmed OutcomeStatus = "confirmed"
	// StatusSubmitted: accepted by the node but receipt lookup failed,
	// so inclusion is unknown.
	StatusSubmitted OutcomeStatus = "submitted"
	// StatusTimeout: accepted by the node, no confirmation within the
	// fixed wait.
	StatusTimeout OutcomeStatus = "timeout"
	// StatusRejected: the transfer never made it onto the wire.
	StatusRejected OutcomeStatus = "rejected"
)

// Outcome is the immutable terminal record of one send attempt. All four
// states are valid tool results; none are retried automatically.
type Outcome struct {
	Status      OutcomeStatus
	Hash        string
	BlockNumber uint64
	GasUsed     uint64
	GasEstimate uint64
	Reason      string
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusConfirmed:
		return fmt.Sprintf("Transaction confirmed in block %d (gas used %d). Hash: %s",
			o.BlockNumber, o.GasUsed, o.Hash)
	case StatusSubmitted:
		return fmt.Sprintf("Transaction submitted, confirmation status unknown (%s). Hash: %s",
			o.Reason, o.Hash)
	case StatusTimeout:
		return fmt.Sprintf("Transaction submitted but not confirmed within the timeout (gas estimate %d). Hash: %s",
			o.GasEstimate, o.Hash)
	default:
		return fmt.Sprintf("Transaction rejected: %s", o.Reason)
	}
}

func rejected(format string, args ...any) Outcome {
	return Outcome{Status: StatusRejected, Reason: fmt.Sprintf(format, args...)}
}

// Send validates the intent, signs a legacy transaction and submits it, then
// polls for one confirmation until the configured timeout. It never invents
// an outcome: every failure before submission is a rejection, and failures
// after submission report the hash that is already on the wire.
func (c *Client) Send(ctx context.Context, intent *SendIntent) Outcome {
	if !common.IsHexAddress(intent.From) {
		return rejected("Invalid Ethereum address format: %s", intent.From)
	}
	if !common.IsHexAddress(intent.To) {
		return rejected("Invalid Ethereum address format: %s", intent.To)
	}
	wei, err := EtherToWei(intent.Amount)
	if err != nil {
		return rejected("%v", err)
	}

	keyHex := intent.PrivateKey
	if keyHex == "" {
		resident, ok := c.wallet.Key(intent.From)
		if !ok {
			return rejected("no private key available for %s: generate a wallet first or supply one in the command", intent.From)
		}
		keyHex = resident
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return rejected("invalid private key: %v", err)
	}

	from := common.HexToAddress(intent.From)
	to := common.HexToAddress(intent.To)

	gasPrice, err := c.rpc.SuggestGasPrice(ctx)
	if err != nil {
		return rejected("gas price query failed: %v", err)
	}
	gasLimit, err := c.rpc.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Value: wei})
	if err != nil {
		return rejected("gas estimation failed: %v", err)
	}
	nonce, err := c.rpc.PendingNonceAt(ctx, from)
	if err != nil {
		return rejected("nonce query failed: %v", err)
	}
	chainID, err := c.rpc.ChainID(ctx)
	if err != nil {
		return rejected("chain id query failed: %v", err)
	}

	tx := types.NewTransaction(nonce, to, wei, gasLimit, gasPrice, nil)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), key)
	if err != nil {
		return rejected("signing failed: %v", err)
	}
	if err := c.rpc.SendTransaction(ctx, signed); err != nil {
		return rejected("submission failed: %v", err)
	}

	hash := signed.Hash()
	slog.Info("transaction submitted", "hash", hash.Hex(), "from", intent.From, "to", intent.To, "amount", intent.Amount)
	return c.awaitConfirmation(ctx, hash, gasLimit)
}

// awaitConfirmation polls for a receipt at the configured interval until the
// confirmation timeout elapses. A pending transaction at the deadline is a
// valid terminal result, not an error.
func (c *Client) awaitConfirmation(ctx context.Context, hash common.Hash, gasEstimate uint64) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.rpc.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return Outcome{Status: StatusRejected, Hash: hash.Hex(),
					Reason: fmt.Sprintf("transaction reverted in block %d", receipt.BlockNumber.Uint64())}
			}
			return Outcome{
				Status:      StatusConfirmed,
				Hash:        hash.Hex(),
				BlockNumber: receipt.BlockNumber.Uint64(),
				GasUsed:     receipt.GasUsed,
				GasEstimate: gasEstimate,
			}
		case errors.Is(err, ethereum.NotFound):
			// Still pending, keep polling.
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			return Outcome{Status: StatusTimeout, Hash: hash.Hex(), GasEstimate: gasEstimate}
		default:
			return Outcome{Status: StatusSubmitted, Hash: hash.Hex(), Reason: err.Error()}
		}

		select {
		case <-ctx.Done():
			return Outcome{Status: StatusTimeout, Hash: hash.Hex(), GasEstimate: gasEstimate}
		case <-ticker.C:
		}
	}
}
