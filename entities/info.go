package entities

type NodeInfo struct {
	P2PID         string `json:"p2pId"`
	ServerVersion string `json:"serverVersion"`
	MempoolSize   uint64 `json:"mempoolSize"`
	IsSynced      bool   `json:"isSynced"`
}

type GetInfoRes struct {
	RPCBaseRes
	Result *NodeInfo `json:"result"`
}
