package transaction

import (
	"encoding/hex"
	"fmt"
)

const TxVersion = 0

// SubnetworkIDNative marks a plain payment transaction.
var SubnetworkIDNative = [20]byte{}

type TxID [32]byte

func (id TxID) String() string {
	return hex.EncodeToString(id[:])
}

func NewTxIDFromStr(s string) (TxID, error) {
	var id TxID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(b) != 32 {
		return id, fmt.Errorf("transaction ID must be 32 bytes, got %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Outpoint identifies one spendable output. It is a value type and is used
// as a map key.
type Outpoint struct {
	TxID  TxID
	Index uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Index)
}

// UtxoEntry is an immutable snapshot of one output as reported by the node.
type UtxoEntry struct {
	Amount          uint64
	ScriptPublicKey []byte
	BlockDAAScore   uint64
	IsCoinbase      bool
}

type Input struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       byte
}

type Output struct {
	Value           uint64
	ScriptPublicKey []byte
}

type Transaction struct {
	Version      uint16
	Inputs       []*Input
	Outputs      []*Output
	LockTime     uint64
	SubnetworkID [20]byte
	Gas          uint64
	Payload      []byte
}

func New(inputs []*Input, outputs []*Output) *Transaction {
	return &Transaction{
		Version:      TxVersion,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     0,
		SubnetworkID: SubnetworkIDNative,
		Gas:          0,
		Payload:      []byte{},
	}
}
