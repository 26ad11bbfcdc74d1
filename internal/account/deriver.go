// Package account derives deterministic signing accounts from a wallet
// mnemonic.
package account

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	bip39 "github.com/tyler-smith/go-bip39"

	"stxswap/internal/c32"
	"stxswap/internal/chain"
)

// BIP-44 path components: m/44'/5757'/0'/0/index.
const (
	purpose      = 44
	stacksCoin   = 5757
	walletChange = 0
)

// Account is a derived address and signing key. The key is a secret: callers
// must limit its scope to a single transaction-building call.
type Account struct {
	Address    string
	PrivateKey []byte // 32 bytes
	Index      int
}

// Deriver derives accounts from scratch on every call; nothing is cached
// between invocations.
type Deriver struct{}

// DeriveChildAccount expands the wallet from the mnemonic and derives
// accounts sequentially from 0 through index, returning the last. The
// sequential walk mirrors wallet expansion: each account extends state built
// by the previous derivation, so index lookups are not constant-time.
func (Deriver) DeriveChildAccount(network chain.Network, mnemonic string, index int) (*Account, error) {
	return DeriveChildAccount(network, mnemonic, index)
}

// DeriveChildAccount is the package-level form of Deriver.DeriveChildAccount.
func DeriveChildAccount(network chain.Network, mnemonic string, index int) (*Account, error) {
	if index < 0 {
		return nil, fmt.Errorf("account index must be non-negative, got %d", index)
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}

	// Version bytes from the params are only used for xkey serialization,
	// which never happens here.
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	changeKey, err := deriveChangeKey(master)
	if err != nil {
		return nil, err
	}

	var child *hdkeychain.ExtendedKey
	for i := 0; i <= index; i++ {
		child, err = changeKey.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
	}

	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key for account %d: %w", index, err)
	}
	pub, err := child.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("extract public key for account %d: %w", index, err)
	}

	address, err := c32.EncodeAddress(network.AddressVersion(), c32.Hash160(pub.SerializeCompressed()))
	if err != nil {
		return nil, fmt.Errorf("encode address for account %d: %w", index, err)
	}

	return &Account{
		Address:    address,
		PrivateKey: priv.Serialize(),
		Index:      index,
	}, nil
}

// deriveChangeKey walks the fixed path prefix m/44'/5757'/0'/0.
func deriveChangeKey(master *hdkeychain.ExtendedKey) (*hdkeychain.ExtendedKey, error) {
	purposeKey, err := master.Derive(hdkeychain.HardenedKeyStart + purpose)
	if err != nil {
		return nil, fmt.Errorf("derive purpose key: %w", err)
	}
	coinKey, err := purposeKey.Derive(hdkeychain.HardenedKeyStart + stacksCoin)
	if err != nil {
		return nil, fmt.Errorf("derive coin key: %w", err)
	}
	accountKey, err := coinKey.Derive(hdkeychain.HardenedKeyStart + 0)
	if err != nil {
		return nil, fmt.Errorf("derive account key: %w", err)
	}
	changeKey, err := accountKey.Derive(walletChange)
	if err != nil {
		return nil, fmt.Errorf("derive change key: %w", err)
	}
	return changeKey, nil
}
