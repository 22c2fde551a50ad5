package workers

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/kaspagen/txgen/transaction"
	"github.com/kaspagen/txgen/utils"
	"github.com/kaspagen/txgen/utxomanager"
	"github.com/kaspagen/txgen/wallet"
)

// TxGeneratorWorker drives the whole pipeline: once per tick it selects
// inputs, builds an unsigned transaction, claims its outpoints and queues it
// for the submit loop. Refreshes and backpressure run inline on the same
// goroutine; signing and submission run on the submit loop.
type TxGeneratorWorker struct {
	WorkerAbs
	account           *wallet.Account
	manager           *utxomanager.UTXOManager
	tps               uint64
	refreshFailPolicy string
	coinbaseMaturity  uint64
	maximizeInputs    bool
	lastRefresh       uint64
}

func (w *TxGeneratorWorker) Init(
	id int,
	name string,
	rpcClient *utils.HttpClient,
	account *wallet.Account,
	tps uint64,
	refreshFailPolicy string,
) error {
	if err := w.WorkerAbs.Init(id, name, "", rpcClient); err != nil {
		return err
	}
	if tps == 0 {
		return fmt.Errorf("tps must be positive")
	}
	switch refreshFailPolicy {
	case RefreshFailPolicyFatal, RefreshFailPolicyRetry:
	default:
		return fmt.Errorf("unknown refresh fail policy %q", refreshFailPolicy)
	}
	w.account = account
	w.manager = utxomanager.NewUTXOManager()
	w.tps = tps
	w.refreshFailPolicy = refreshFailPolicy

	// The node tells us which network we are on; the maturity parameter
	// follows from that. Also doubles as the startup connectivity check.
	dagInfo, err := getBlockDagInfo(rpcClient)
	if err != nil {
		return fmt.Errorf("could not get block-DAG info from node: %v", err)
	}
	w.Network = dagInfo.NetworkName
	w.coinbaseMaturity = coinbaseMaturityForNetwork(dagInfo.NetworkName)

	lastParent := ""
	if len(dagInfo.VirtualParentHashes) > 0 {
		lastParent = dagInfo.VirtualParentHashes[len(dagInfo.VirtualParentHashes)-1]
	}
	w.Logger.Infof(
		"Node block-DAG info: network: %v, block count: %v, header count: %v, difficulty: %v, "+
			"median time: %v, DAA score: %v, pruning point: %v, tips: %v, %v virtual parents: ...%v, coinbase maturity: %v",
		dagInfo.NetworkName,
		dagInfo.BlockCount,
		dagInfo.HeaderCount,
		dagInfo.Difficulty,
		dagInfo.PastMedianTime,
		dagInfo.VirtualDaaScore,
		dagInfo.PruningPointHash,
		len(dagInfo.TipHashes),
		len(dagInfo.VirtualParentHashes),
		lastParent,
		w.coinbaseMaturity,
	)
	return nil
}

func (w *TxGeneratorWorker) Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-w.Quit
		cancel()
	}()

	if err := w.refreshUTXOs(ctx); err != nil {
		w.notifyFatal(fmt.Sprintf("Could not fetch initial UTXO set - with err: %v", err))
		return
	}
	w.lastRefresh = unixMillis()

	submitQueue := make(chan *CandidateTx, SubmitQueueCapacity)
	submitter := &txSubmitter{
		logger:    w.Logger,
		rpcClient: w.RPCClient,
		account:   w.account,
		manager:   w.manager,
	}
	submitterDone := make(chan bool)
	go func() {
		submitter.submitLoop(submitQueue)
		submitterDone <- true
	}()

	// Burst 1 means a late tick fires once and the schedule moves on;
	// missed ticks are never replayed as a burst.
	limiter := rate.NewLimiter(rate.Limit(w.tps), 1)

loop:
	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		free := w.manager.EstimatedFreeUTXOs()
		nextMode := utxomanager.NextInputsMode(w.maximizeInputs, free)
		if nextMode && !w.maximizeInputs {
			w.Logger.Info("Starting to maximize inputs")
		} else if !nextMode && w.maximizeInputs {
			w.Logger.Info("Stopping to maximize inputs")
		}
		w.maximizeInputs = nextMode

		now := unixMillis()
		candidate := w.buildCandidateTx(now)
		hasFunds := candidate != nil
		if hasFunds {
			select {
			case submitQueue <- candidate:
			case <-ctx.Done():
				break loop
			}
		} else {
			w.Logger.Info("Has not enough funds")
		}

		if !hasFunds || now-w.lastRefresh > UTXORefreshIntervalMillis {
			w.Logger.Info("Refetching UTXO set")
			time.Sleep(UTXORefreshDelay)
			if err := w.refreshUTXOs(ctx); err != nil {
				if ctx.Err() == nil {
					w.notifyFatal(fmt.Sprintf("Could not refresh UTXO set - with err: %v", err))
				}
				break loop
			}
			w.lastRefresh = unixMillis()
			if err := w.pauseIfMempoolIsFull(ctx); err != nil {
				break loop
			}
		}

		w.manager.SweepExpired(unixMillis())
	}

	close(submitQueue)
	<-submitterDone
}

// buildCandidateTx runs one selection round. Returns nil when the wallet
// cannot fund a transaction right now.
func (w *TxGeneratorWorker) buildCandidateTx(nowMillis uint64) *CandidateTx {
	numOuts := uint64(2)
	if w.maximizeInputs {
		numOuts = 1
	}
	selected, netAmount := w.manager.SelectUTXOs(DefaultSendAmount, numOuts, w.maximizeInputs)
	if len(selected) == 0 {
		return nil
	}

	tx := buildUnsignedTx(selected, netAmount, numOuts, w.account.PayToAddressScript())

	outpoints := make([]transaction.Outpoint, len(tx.Inputs))
	for i, input := range tx.Inputs {
		outpoints[i] = input.PreviousOutpoint
	}
	w.manager.MarkPending(outpoints, nowMillis)

	return &CandidateTx{Tx: tx, UTXOs: selected}
}

func buildUnsignedTx(selected []utxomanager.UTXOPair, sendAmount uint64, numOuts uint64, scriptPublicKey []byte) *transaction.Transaction {
	inputs := make([]*transaction.Input, 0, len(selected))
	for _, pair := range selected {
		inputs = append(inputs, &transaction.Input{
			PreviousOutpoint: pair.Outpoint,
			SignatureScript:  []byte{},
			Sequence:         0,
			SigOpCount:       1,
		})
	}
	outputs := make([]*transaction.Output, 0, numOuts)
	for i := uint64(0); i < numOuts; i++ {
		outputs = append(outputs, &transaction.Output{
			// Truncation loses up to numOuts-1 sompi; accepted.
			Value:           sendAmount / numOuts,
			ScriptPublicKey: scriptPublicKey,
		})
	}
	return transaction.New(inputs, outputs)
}

func (w *TxGeneratorWorker) refreshUTXOs(ctx context.Context) error {
	for {
		err := w.refreshOnce()
		if err == nil {
			return nil
		}
		if w.refreshFailPolicy != RefreshFailPolicyRetry {
			return err
		}
		w.Logger.Warnf("UTXO refresh failed, retrying in %v: %v", RefreshRetryDelay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RefreshRetryDelay):
		}
	}
}

// refreshOnce scans the mempool before fetching the UTXO list. The order
// matters: a freshly fetched UTXO must not race an unseen mempool spend.
func (w *TxGeneratorWorker) refreshOnce() error {
	if err := w.populatePendingFromMempool(); err != nil {
		return err
	}
	utxos, err := fetchSpendableUTXOs(w.RPCClient, w.account.Address(), w.coinbaseMaturity)
	if err != nil {
		return err
	}
	w.manager.ReplaceSpendable(utxos)
	return nil
}

func (w *TxGeneratorWorker) populatePendingFromMempool() error {
	entries, err := getMempoolEntriesByAddress(w.RPCClient, w.account.Address())
	if err != nil {
		return err
	}
	now := unixMillis()
	outpoints := []transaction.Outpoint{}
	for _, entry := range entries {
		for _, sending := range entry.Sending {
			for _, input := range sending.Transaction.Inputs {
				outpoint, err := parseOutpoint(input.PreviousOutpoint)
				if err != nil {
					return err
				}
				outpoints = append(outpoints, outpoint)
			}
		}
	}
	w.manager.MarkPending(outpoints, now)
	return nil
}

// pauseIfMempoolIsFull polls the node until its mempool drops under the
// threshold. Called right after a refresh, never mid-batch.
func (w *TxGeneratorWorker) pauseIfMempoolIsFull(ctx context.Context) error {
	for {
		info, err := getNodeInfo(w.RPCClient)
		if err != nil {
			if w.refreshFailPolicy != RefreshFailPolicyRetry {
				w.notifyFatal(fmt.Sprintf("Could not poll mempool size - with err: %v", err))
				return err
			}
			w.Logger.Warnf("Mempool size poll failed, retrying in %v: %v", RefreshRetryDelay, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(RefreshRetryDelay):
			}
			continue
		}
		if info.MempoolSize < MempoolSizeThreshold {
			return nil
		}
		w.Logger.Infof("Mempool has %d entries. Pausing for %v to reduce mempool pressure", info.MempoolSize, MempoolPauseDuration)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(MempoolPauseDuration):
		}
	}
}

func (w *TxGeneratorWorker) notifyFatal(msg string) {
	w.Logger.Error(msg)
	utils.SendSlackNotification(msg, utils.AlertNotification)
}
