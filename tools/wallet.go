package tools

import (
	"context"
	"encoding/json"

	"github.com/yehia67/onchain-agent-template/agent"
	"github.com/yehia67/onchain-agent-template/eth"
)

var createWalletTool = agent.Tool{
	Name:        "create_wallet",
	Description: "Generate a new Ethereum wallet and return its address and private key",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`),
}

var balanceTool = agent.Tool{
	Name:        "get_balance",
	Description: "Get the ETH balance of an Ethereum address",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"address": {"type": "string", "description": "Ethereum address to check (0x...)"}
		},
		"required": ["address"]
	}`),
}

var sendTool = agent.Tool{
	Name:        agent.SendToolName,
	Description: "Send ETH from one address to another. Accepts either a free-text command or structured fields",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"command":     {"type": "string", "description": "Free-text command, e.g. \"send 0.1 ETH from 0x... to 0x...\""},
			"amount":      {"type": "string", "description": "Decimal ETH amount, e.g. \"0.1\""},
			"from":        {"type": "string", "description": "Source address (0x...)"},
			"to":          {"type": "string", "description": "Destination address (0x...)"},
			"private_key": {"type": "string", "description": "Signing key override; the wallet registry is used otherwise"}
		}
	}`),
}

// RegisterBuiltins wires the standard tool set: weather, time and the three
// wallet operations backed by the blockchain client and wallet registry.
func RegisterBuiltins(r *Registry, client *eth.Client, wallet *eth.Wallet) error {
	if err := r.Register(weatherTool, weatherHandler); err != nil {
		return err
	}
	if err := r.Register(timeTool, timeHandler); err != nil {
		return err
	}
	if err := r.Register(createWalletTool, createWalletHandler(wallet)); err != nil {
		return err
	}
	if err := r.Register(balanceTool, balanceHandler(client)); err != nil {
		return err
	}
	return r.Register(sendTool, sendHandler(client))
}

func createWalletHandler(wallet *eth.Wallet) Handler {
	return func(_ context.Context, _ json.RawMessage) string {
		address, privateKey, err := wallet.Generate()
		if err != nil {
			return errJSON("wallet generation failed: " + err.Error())
		}
		out, _ := json.Marshal(map[string]string{
			"address":     address,
			"private_key": privateKey,
			"note":        "the key is held only in memory for this session; save it if you need the wallet later",
		})
		return string(out)
	}
}

func balanceHandler(client *eth.Client) Handler {
	return func(ctx context.Context, input json.RawMessage) string {
		var in struct {
			Address string `json:"address"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return errJSON("invalid input: " + err.Error())
		}
		balance, err := client.Balance(ctx, in.Address)
		if err != nil {
			return errJSON(err.Error())
		}
		out, _ := json.Marshal(map[string]string{"address": in.Address, "balance": balance})
		return string(out)
	}
}

func sendHandler(client *eth.Client) Handler {
	return func(ctx context.Context, input json.RawMessage) string {
		var in struct {
			Command    string `json:"command"`
			Amount     string `json:"amount"`
			From       string `json:"from"`
			To         string `json:"to"`
			PrivateKey string `json:"private_key"`
		}
		if err := json.Unmarshal(input, &in); err != nil {
			return errJSON("invalid input: " + err.Error())
		}

		intent := &eth.SendIntent{
			Amount:     in.Amount,
			From:       in.From,
			To:         in.To,
			PrivateKey: in.PrivateKey,
		}
		if in.Command != "" {
			parsed, err := eth.ParseSendCommand(in.Command)
			if err != nil {
				return errJSON(err.Error())
			}
			intent = parsed
		} else {
			switch {
			case intent.Amount == "":
				return errJSON(eth.ErrNoAmount.Error())
			case intent.From == "":
				return errJSON(eth.ErrNoFrom.Error())
			case intent.To == "":
				return errJSON(eth.ErrNoTo.Error())
			}
		}

		// Every outcome, pending and timed-out included, is information
		// the user must see, so all four states render as a result.
		return client.Send(ctx, intent).String()
	}
}
