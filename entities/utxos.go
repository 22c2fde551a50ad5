package entities

type RPCUtxoEntry struct {
	Amount          uint64             `json:"amount"`
	ScriptPublicKey RPCScriptPublicKey `json:"scriptPublicKey"`
	BlockDaaScore   uint64             `json:"blockDaaScore"`
	IsCoinbase      bool               `json:"isCoinbase"`
}

type UtxosByAddressesEntry struct {
	Address   string       `json:"address"`
	Outpoint  RPCOutpoint  `json:"outpoint"`
	UtxoEntry RPCUtxoEntry `json:"utxoEntry"`
}

type GetUtxosByAddressesRes struct {
	RPCBaseRes
	Result []UtxosByAddressesEntry `json:"result"`
}
