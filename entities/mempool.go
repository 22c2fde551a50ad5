package entities

type MempoolEntry struct {
	Fee         uint64         `json:"fee"`
	Transaction RPCTransaction `json:"transaction"`
	IsOrphan    bool           `json:"isOrphan"`
}

type MempoolEntryByAddress struct {
	Address   string         `json:"address"`
	Sending   []MempoolEntry `json:"sending"`
	Receiving []MempoolEntry `json:"receiving"`
}

type GetMempoolEntriesByAddressesRes struct {
	RPCBaseRes
	Result []MempoolEntryByAddress `json:"result"`
}
