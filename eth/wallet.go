package eth

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet is an in-memory registry of generated keys, mapping a canonical
// hex address to its private key. Keys live only for the process lifetime
// and are returned to the caller in plaintext; this is demo-grade custody,
// not a keystore.
type Wallet struct {
	mu   sync.Mutex
	keys map[string]string // canonical address -> 32-byte private key hex
}

func NewWallet() *Wallet {
	return &Wallet{keys: make(map[string]string)}
}

// Generate draws a fresh secp256k1 key, derives its address and records the
// pair in the registry.
func (w *Wallet) Generate() (address, privateKeyHex string, err error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("generate key: %w", err)
	}
	address = crypto.PubkeyToAddress(key.PublicKey).Hex()
	privateKeyHex = hex.EncodeToString(crypto.FromECDSA(key))

	w.mu.Lock()
	w.keys[address] = privateKeyHex
	w.mu.Unlock()
	return address, privateKeyHex, nil
}

// Key looks up the private key for an address. Lookups normalize the
// address so the mixed-case checksum form and the lowercase form both hit.
func (w *Wallet) Key(address string) (string, bool) {
	canonical := common.HexToAddress(address).Hex()
	w.mu.Lock()
	defer w.mu.Unlock()
	key, ok := w.keys[canonical]
	return key, ok
}

// Addresses returns all registered addresses.
func (w *Wallet) Addresses() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	addrs := make([]string, 0, len(w.keys))
	for a := range w.keys {
		addrs = append(addrs, a)
	}
	return addrs
}
