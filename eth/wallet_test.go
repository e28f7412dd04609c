package eth_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yehia67/onchain-agent-template/eth"
)

func TestWallet_GenerateRoundTrip(t *testing.T) {
	w := eth.NewWallet()
	address, keyHex, err := w.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		t.Fatalf("stored key is not valid hex: %v", err)
	}
	if derived := crypto.PubkeyToAddress(key.PublicKey).Hex(); derived != address {
		t.Errorf("re-derived address %s != generated address %s", derived, address)
	}

	stored, ok := w.Key(address)
	if !ok {
		t.Fatal("generated key not found in registry")
	}
	if stored != keyHex {
		t.Error("registry returned a different key than Generate")
	}
}

func TestWallet_KeyNormalizesCase(t *testing.T) {
	w := eth.NewWallet()
	address, _, err := w.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, ok := w.Key(strings.ToLower(address)); !ok {
		t.Error("lowercase lookup missed the registry entry")
	}
}

func TestWallet_ConcurrentGenerateAndLookup(t *testing.T) {
	w := eth.NewWallet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			address, _, err := w.Generate()
			if err != nil {
				t.Errorf("Generate failed: %v", err)
				return
			}
			if _, ok := w.Key(address); !ok {
				t.Errorf("key for %s not visible after Generate", address)
			}
		}()
	}
	wg.Wait()
	if got := len(w.Addresses()); got != 8 {
		t.Errorf("expected 8 wallets, got %d", got)
	}
}
