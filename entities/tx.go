package entities

type RPCOutpoint struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

type RPCScriptPublicKey struct {
	Version         uint16 `json:"version"`
	ScriptPublicKey string `json:"scriptPublicKey"`
}

type RPCTransactionInput struct {
	PreviousOutpoint RPCOutpoint `json:"previousOutpoint"`
	SignatureScript  string      `json:"signatureScript"`
	Sequence         uint64      `json:"sequence"`
	SigOpCount       byte        `json:"sigOpCount"`
}

type RPCTransactionOutput struct {
	Amount          uint64             `json:"amount"`
	ScriptPublicKey RPCScriptPublicKey `json:"scriptPublicKey"`
}

type RPCTransaction struct {
	Version      uint16                 `json:"version"`
	Inputs       []RPCTransactionInput  `json:"inputs"`
	Outputs      []RPCTransactionOutput `json:"outputs"`
	LockTime     uint64                 `json:"lockTime"`
	SubnetworkID string                 `json:"subnetworkId"`
	Gas          uint64                 `json:"gas"`
	Payload      string                 `json:"payload"`
}
