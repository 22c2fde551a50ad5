package workers

import "time"

const (
	// DefaultSendAmount - target amount moved per transaction, in sompi
	DefaultSendAmount = 10_000

	RequiredConfirmations = 10

	// Coinbase maturity in DAA-score units, per network. Suffix 11 runs at
	// a higher block rate and needs the larger value.
	CoinbaseMaturity          = 100
	CoinbaseMaturityTestnet11 = 1000

	UTXORefreshIntervalMillis = 60_000

	// UTXORefreshDelay throttles refreshes; the UTXO fetch is heavy on the node.
	UTXORefreshDelay  = 100 * time.Millisecond
	RefreshRetryDelay = 2 * time.Second

	MempoolSizeThreshold = 10_000
	MempoolPauseDuration = 10 * time.Second

	StatsReportIntervalMillis = 50_000

	SubmitQueueCapacity = 100
)

// Refresh-path RPC failure policies.
const (
	RefreshFailPolicyFatal = "fatal"
	RefreshFailPolicyRetry = "retry"
)
