package eth

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// EtherToWei converts a decimal ETH amount ("0.01") into wei using the
// fixed 10^18 scale. Fractions of a wei are truncated.
func EtherToWei(amount string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative: %s", amount)
	}
	wei := new(big.Int).Mul(r.Num(), big.NewInt(params.Ether))
	return wei.Quo(wei, r.Denom()), nil
}

// WeiToEther renders a wei balance as a decimal ETH string.
func WeiToEther(wei *big.Int) string {
	f := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		new(big.Float).SetInt(big.NewInt(params.Ether)),
	)
	return f.Text('f', -1)
}
