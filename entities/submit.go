package entities

type SubmitTransactionResult struct {
	TransactionID string `json:"transactionId"`
}

type SubmitTransactionRes struct {
	RPCBaseRes
	Result *SubmitTransactionResult `json:"result"`
}
