package workers

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kaspagen/txgen/transaction"
	"github.com/kaspagen/txgen/utils"
	"github.com/kaspagen/txgen/utxomanager"
	"github.com/kaspagen/txgen/wallet"
)

// CandidateTx is an unsigned transaction together with the exact UTXO
// entries it spends, captured at selection time. Ownership moves from the
// generator to the submit loop over the queue; nothing retains it afterward.
type CandidateTx struct {
	Tx    *transaction.Transaction
	UTXOs []utxomanager.UTXOPair
}

type txSubmitter struct {
	logger    *logrus.Entry
	rpcClient *utils.HttpClient
	account   *wallet.Account
	manager   *utxomanager.UTXOManager
}

// submitLoop drains the queue in batches: one blocking receive, then up to
// parallelism-1 opportunistic ones. Each batch is signed in parallel and
// submitted sequentially in batch order, so the stats stay accurate. Returns
// when the queue is closed.
func (s *txSubmitter) submitLoop(queue <-chan *CandidateTx) {
	st := &stats{since: unixMillis()}
	parallelism := runtime.NumCPU()

	for candidate := range queue {
		batch := []*CandidateTx{candidate}
	drain:
		for len(batch) < parallelism {
			select {
			case next, ok := <-queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}

		amounts := make([]uint64, len(batch))
		group := new(errgroup.Group)
		group.SetLimit(parallelism)
		for i := range batch {
			i := i
			group.Go(func() error {
				candidate := batch[i]
				entries := make([]*transaction.UtxoEntry, len(candidate.UTXOs))
				var amountUsed uint64
				for j, pair := range candidate.UTXOs {
					entries[j] = pair.Entry
					amountUsed += pair.Entry.Amount
				}
				if err := s.account.Sign(candidate.Tx, entries); err != nil {
					return err
				}
				amounts[i] = amountUsed
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			s.logger.Errorf("Could not sign transaction batch: %v", err)
			continue
		}

		for i, candidate := range batch {
			txID, err := submitTransaction(s.rpcClient, candidate.Tx)
			if err != nil {
				// Inputs stay marked pending until the sweep releases
				// them an hour later.
				s.logger.Warnf("RPC error when submitting %v: %v", candidate.Tx.ID(), err)
				continue
			}
			s.logger.Debugf("Submitted transaction %v", txID)

			st.record(len(candidate.Tx.Inputs), len(candidate.Tx.Outputs), amounts[i])
			now := unixMillis()
			if now-st.since > StatsReportIntervalMillis {
				s.reportStats(st, now)
			}
		}
	}
}

func (s *txSubmitter) reportStats(st *stats, nowMillis uint64) {
	timePast := nowMillis - st.since
	s.logger.Infof(
		"Tx rate: %.1f/sec, avg UTXO amount: %d, avg UTXOs per tx: %d, avg outs per tx: %d, estimated available UTXOs: %d",
		1000*float64(st.numTxs)/float64(timePast),
		st.utxosAmount/uint64(st.numUTXOs),
		st.numUTXOs/st.numTxs,
		st.numOuts/st.numTxs,
		s.manager.EstimatedFreeUTXOs(),
	)
	st.reset(nowMillis)
}
