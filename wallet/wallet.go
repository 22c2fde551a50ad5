package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/kaspagen/txgen/transaction"
)

const (
	// SigHashAll is appended to every signature script.
	SigHashAll = 0x01

	opCheckSig = 0xac
)

// Account wraps the single wallet key the generator spends from. The key is
// immutable after creation and safe to share across signing goroutines.
type Account struct {
	privateKey *btcec.PrivateKey
	pubKey     []byte // 32-byte x-only form
	address    string
}

// NewAccountFromPrivateKeyStr parses a 32-byte hex secret key.
func NewAccountFromPrivateKeyStr(privateKeyHex string, prefix string) (*Account, error) {
	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %v", err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(keyBytes))
	}
	privateKey, _ := btcec.PrivKeyFromBytes(keyBytes)
	return newAccount(privateKey, prefix)
}

// GenerateAccount creates a fresh random keypair.
func GenerateAccount(prefix string) (*Account, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return newAccount(privateKey, prefix)
}

func newAccount(privateKey *btcec.PrivateKey, prefix string) (*Account, error) {
	pubKey := schnorr.SerializePubKey(privateKey.PubKey())
	address, err := encodeAddress(prefix, pubKey)
	if err != nil {
		return nil, err
	}
	return &Account{
		privateKey: privateKey,
		pubKey:     pubKey,
		address:    address,
	}, nil
}

func (a *Account) Address() string {
	return a.address
}

func (a *Account) PrivateKeyStr() string {
	return hex.EncodeToString(a.privateKey.Serialize())
}

// PayToAddressScript returns the wallet's p2pk locking script:
// a 32-byte pubkey push followed by OP_CHECKSIG.
func (a *Account) PayToAddressScript() []byte {
	script := make([]byte, 0, 34)
	script = append(script, 0x20)
	script = append(script, a.pubKey...)
	script = append(script, opCheckSig)
	return script
}

// Sign fills the signature script of every input. entries must hold the
// spent UTXO entries in input order.
func (a *Account) Sign(tx *transaction.Transaction, entries []*transaction.UtxoEntry) error {
	if len(entries) != len(tx.Inputs) {
		return fmt.Errorf("have %d UTXO entries for %d inputs", len(entries), len(tx.Inputs))
	}
	for i, input := range tx.Inputs {
		hash := tx.SigHash(i, entries[i].Amount, entries[i].ScriptPublicKey)
		sig, err := schnorr.Sign(a.privateKey, hash[:])
		if err != nil {
			return fmt.Errorf("signing input %d: %v", i, err)
		}
		serialized := sig.Serialize()
		sigScript := make([]byte, 0, len(serialized)+2)
		sigScript = append(sigScript, byte(len(serialized)+1))
		sigScript = append(sigScript, serialized...)
		sigScript = append(sigScript, SigHashAll)
		input.SignatureScript = sigScript
	}
	return nil
}

// Verify checks one input's signature script against the wallet key. Used by
// tests; the node performs the real validation.
func (a *Account) Verify(tx *transaction.Transaction, idx int, entry *transaction.UtxoEntry) bool {
	sigScript := tx.Inputs[idx].SignatureScript
	if len(sigScript) != 66 || sigScript[0] != 65 || sigScript[65] != SigHashAll {
		return false
	}
	sig, err := schnorr.ParseSignature(sigScript[1:65])
	if err != nil {
		return false
	}
	pubKey, err := schnorr.ParsePubKey(a.pubKey)
	if err != nil {
		return false
	}
	hash := tx.SigHash(idx, entry.Amount, entry.ScriptPublicKey)
	return sig.Verify(hash[:], pubKey)
}

func encodeAddress(prefix string, pubKey []byte) (string, error) {
	converted, err := bech32.ConvertBits(pubKey, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(prefix, converted)
}
