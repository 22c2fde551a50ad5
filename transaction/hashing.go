package transaction

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

var (
	txIDKey    = []byte("TransactionID")
	sigHashKey = []byte("TransactionSigningHash")
)

// ID hashes the transaction with empty signature scripts, so the ID is
// stable across signing.
func (tx *Transaction) ID() TxID {
	var buf bytes.Buffer
	serializeTx(&buf, tx, -1, nil)
	return TxID(keyedHash(txIDKey, buf.Bytes()))
}

// SigHash returns the digest signed for input idx. It commits to the whole
// transaction body plus the amount and script of the output being spent.
func (tx *Transaction) SigHash(idx int, prevAmount uint64, prevScript []byte) [32]byte {
	var buf bytes.Buffer
	serializeTx(&buf, tx, idx, func(w *bytes.Buffer) {
		writeUint64(w, prevAmount)
		writeVarBytes(w, prevScript)
	})
	return keyedHash(sigHashKey, buf.Bytes())
}

func keyedHash(key, data []byte) [32]byte {
	h, err := blake2b.New256(key)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// serializeTx writes a deterministic little-endian encoding of tx. Signature
// scripts are always written as empty. When sigIdx >= 0 the index and the
// extra commitment are appended, which is what makes the digest per-input.
func serializeTx(w *bytes.Buffer, tx *Transaction, sigIdx int, extra func(*bytes.Buffer)) {
	writeUint16(w, tx.Version)
	writeUint64(w, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		w.Write(in.PreviousOutpoint.TxID[:])
		writeUint32(w, in.PreviousOutpoint.Index)
		writeVarBytes(w, nil)
		writeUint64(w, in.Sequence)
		w.WriteByte(in.SigOpCount)
	}
	writeUint64(w, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		writeUint64(w, out.Value)
		writeVarBytes(w, out.ScriptPublicKey)
	}
	writeUint64(w, tx.LockTime)
	w.Write(tx.SubnetworkID[:])
	writeUint64(w, tx.Gas)
	writeVarBytes(w, tx.Payload)
	if sigIdx >= 0 {
		writeUint32(w, uint32(sigIdx))
		if extra != nil {
			extra(w)
		}
	}
}

func writeUint16(w *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeUint32(w *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func writeUint64(w *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

func writeVarBytes(w *bytes.Buffer, b []byte) {
	writeUint64(w, uint64(len(b)))
	w.Write(b)
}
