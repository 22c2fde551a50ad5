package entities

type BlockDagInfo struct {
	NetworkName         string   `json:"networkName"`
	BlockCount          uint64   `json:"blockCount"`
	HeaderCount         uint64   `json:"headerCount"`
	Difficulty          float64  `json:"difficulty"`
	PastMedianTime      int64    `json:"pastMedianTime"`
	VirtualDaaScore     uint64   `json:"virtualDaaScore"`
	PruningPointHash    string   `json:"pruningPointHash"`
	TipHashes           []string `json:"tipHashes"`
	VirtualParentHashes []string `json:"virtualParentHashes"`
}

type GetBlockDagInfoRes struct {
	RPCBaseRes
	Result *BlockDagInfo `json:"result"`
}
