package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaspagen/txgen/transaction"
)

func TestNewAccountFromPrivateKeyStr(t *testing.T) {
	account, err := GenerateAccount("kaspatest")
	require.NoError(t, err)

	restored, err := NewAccountFromPrivateKeyStr(account.PrivateKeyStr(), "kaspatest")
	require.NoError(t, err)
	assert.Equal(t, account.Address(), restored.Address())
}

func TestNewAccountFromPrivateKeyStrRejectsMalformed(t *testing.T) {
	_, err := NewAccountFromPrivateKeyStr("not-hex", "kaspatest")
	assert.Error(t, err)

	_, err = NewAccountFromPrivateKeyStr("abcd", "kaspatest")
	assert.Error(t, err)
}

func TestAddressCarriesPrefix(t *testing.T) {
	account, err := GenerateAccount("kaspatest")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(account.Address(), "kaspatest1"))
}

func TestPayToAddressScriptShape(t *testing.T) {
	account, err := GenerateAccount("kaspatest")
	require.NoError(t, err)

	script := account.PayToAddressScript()
	require.Len(t, script, 34)
	assert.Equal(t, byte(0x20), script[0])
	assert.Equal(t, byte(opCheckSig), script[33])
}

func TestSignFillsVerifiableSignatures(t *testing.T) {
	account, err := GenerateAccount("kaspatest")
	require.NoError(t, err)

	script := account.PayToAddressScript()
	entries := []*transaction.UtxoEntry{
		{Amount: 100_000, ScriptPublicKey: script},
		{Amount: 50_000, ScriptPublicKey: script},
	}
	tx := transaction.New(
		[]*transaction.Input{
			{PreviousOutpoint: transaction.Outpoint{TxID: transaction.TxID{1}}, SignatureScript: []byte{}, SigOpCount: 1},
			{PreviousOutpoint: transaction.Outpoint{TxID: transaction.TxID{2}}, SignatureScript: []byte{}, SigOpCount: 1},
		},
		[]*transaction.Output{{Value: 5_000, ScriptPublicKey: script}},
	)

	require.NoError(t, account.Sign(tx, entries))
	for i := range tx.Inputs {
		require.Len(t, tx.Inputs[i].SignatureScript, 66)
		assert.Equal(t, byte(65), tx.Inputs[i].SignatureScript[0])
		assert.Equal(t, byte(SigHashAll), tx.Inputs[i].SignatureScript[65])
		assert.True(t, account.Verify(tx, i, entries[i]))
	}

	// A signature from one input must not verify against another's digest.
	tx.Inputs[1].SignatureScript = tx.Inputs[0].SignatureScript
	assert.False(t, account.Verify(tx, 1, entries[1]))
}

func TestSignRejectsEntryMismatch(t *testing.T) {
	account, err := GenerateAccount("kaspatest")
	require.NoError(t, err)

	tx := transaction.New(
		[]*transaction.Input{{SignatureScript: []byte{}}},
		[]*transaction.Output{{Value: 1}},
	)
	assert.Error(t, account.Sign(tx, nil))
}
