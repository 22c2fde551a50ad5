package workers

// stats accumulates rolling submission counters over one reporting window.
// Only the submit loop touches it.
type stats struct {
	numTxs      int
	numUTXOs    int
	numOuts     int
	utxosAmount uint64
	since       uint64 // window start, unix-millis
}

func (st *stats) record(numInputs int, numOuts int, amountUsed uint64) {
	st.numTxs++
	st.numUTXOs += numInputs
	st.numOuts += numOuts
	st.utxosAmount += amountUsed
}

func (st *stats) reset(nowMillis uint64) {
	st.numTxs = 0
	st.numUTXOs = 0
	st.numOuts = 0
	st.utxosAmount = 0
	st.since = nowMillis
}
