package workers

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaspagen/txgen/entities"
	"github.com/kaspagen/txgen/transaction"
	"github.com/kaspagen/txgen/utils"
	"github.com/kaspagen/txgen/utxomanager"
)

func unixMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

func getBlockDagInfo(rpcClient *utils.HttpClient) (*entities.BlockDagInfo, error) {
	var res entities.GetBlockDagInfoRes
	err := rpcClient.RPCCall("getBlockDagInfo", map[string]interface{}{}, &res)
	if err != nil {
		return nil, err
	}
	if res.RPCError != nil {
		return nil, errors.New(res.RPCError.Message)
	}
	if res.Result == nil {
		return nil, errors.New("getBlockDagInfo: empty result")
	}
	return res.Result, nil
}

func getNodeInfo(rpcClient *utils.HttpClient) (*entities.NodeInfo, error) {
	var res entities.GetInfoRes
	err := rpcClient.RPCCall("getInfo", map[string]interface{}{}, &res)
	if err != nil {
		return nil, err
	}
	if res.RPCError != nil {
		return nil, errors.New(res.RPCError.Message)
	}
	if res.Result == nil {
		return nil, errors.New("getInfo: empty result")
	}
	return res.Result, nil
}

func getMempoolEntriesByAddress(rpcClient *utils.HttpClient, address string) ([]entities.MempoolEntryByAddress, error) {
	params := map[string]interface{}{
		"addresses":             []string{address},
		"includeOrphanPool":     true,
		"filterTransactionPool": false,
	}
	var res entities.GetMempoolEntriesByAddressesRes
	err := rpcClient.RPCCall("getMempoolEntriesByAddresses", params, &res)
	if err != nil {
		return nil, err
	}
	if res.RPCError != nil {
		return nil, errors.New(res.RPCError.Message)
	}
	return res.Result, nil
}

func getUtxosByAddress(rpcClient *utils.HttpClient, address string) ([]entities.UtxosByAddressesEntry, error) {
	params := map[string]interface{}{
		"addresses": []string{address},
	}
	var res entities.GetUtxosByAddressesRes
	err := rpcClient.RPCCall("getUtxosByAddresses", params, &res)
	if err != nil {
		return nil, err
	}
	if res.RPCError != nil {
		return nil, errors.New(res.RPCError.Message)
	}
	return res.Result, nil
}

func submitTransaction(rpcClient *utils.HttpClient, tx *transaction.Transaction) (string, error) {
	params := map[string]interface{}{
		"transaction": toRPCTransaction(tx),
		"allowOrphan": false,
	}
	var res entities.SubmitTransactionRes
	err := rpcClient.RPCCall("submitTransaction", params, &res)
	if err != nil {
		return "", err
	}
	if res.RPCError != nil {
		return "", errors.New(res.RPCError.Message)
	}
	if res.Result == nil {
		return "", errors.New("submitTransaction: empty result")
	}
	return res.Result.TransactionID, nil
}

func toRPCTransaction(tx *transaction.Transaction) entities.RPCTransaction {
	inputs := make([]entities.RPCTransactionInput, 0, len(tx.Inputs))
	for _, in := range tx.Inputs {
		inputs = append(inputs, entities.RPCTransactionInput{
			PreviousOutpoint: entities.RPCOutpoint{
				TransactionID: in.PreviousOutpoint.TxID.String(),
				Index:         in.PreviousOutpoint.Index,
			},
			SignatureScript: hex.EncodeToString(in.SignatureScript),
			Sequence:        in.Sequence,
			SigOpCount:      in.SigOpCount,
		})
	}
	outputs := make([]entities.RPCTransactionOutput, 0, len(tx.Outputs))
	for _, out := range tx.Outputs {
		outputs = append(outputs, entities.RPCTransactionOutput{
			Amount: out.Value,
			ScriptPublicKey: entities.RPCScriptPublicKey{
				Version:         0,
				ScriptPublicKey: hex.EncodeToString(out.ScriptPublicKey),
			},
		})
	}
	return entities.RPCTransaction{
		Version:      tx.Version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     tx.LockTime,
		SubnetworkID: hex.EncodeToString(tx.SubnetworkID[:]),
		Gas:          tx.Gas,
		Payload:      hex.EncodeToString(tx.Payload),
	}
}

func parseOutpoint(rpcOutpoint entities.RPCOutpoint) (transaction.Outpoint, error) {
	txID, err := transaction.NewTxIDFromStr(rpcOutpoint.TransactionID)
	if err != nil {
		return transaction.Outpoint{}, fmt.Errorf("invalid outpoint transaction ID %v: %v", rpcOutpoint.TransactionID, err)
	}
	return transaction.Outpoint{TxID: txID, Index: rpcOutpoint.Index}, nil
}

func parseUtxoEntry(rpcEntry entities.RPCUtxoEntry) (*transaction.UtxoEntry, error) {
	script, err := hex.DecodeString(rpcEntry.ScriptPublicKey.ScriptPublicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid UTXO script: %v", err)
	}
	return &transaction.UtxoEntry{
		Amount:          rpcEntry.Amount,
		ScriptPublicKey: script,
		BlockDAAScore:   rpcEntry.BlockDaaScore,
		IsCoinbase:      rpcEntry.IsCoinbase,
	}, nil
}

// isUTXOSpendable applies the maturity rule: ordinary outputs need
// RequiredConfirmations, coinbase outputs twice the coinbase maturity.
func isUTXOSpendable(entry *transaction.UtxoEntry, virtualDAAScore uint64, coinbaseMaturity uint64) bool {
	neededConfs := uint64(RequiredConfirmations)
	if entry.IsCoinbase {
		neededConfs = 2 * coinbaseMaturity
	}
	return entry.BlockDAAScore+neededConfs < virtualDAAScore
}

// coinbaseMaturityForNetwork picks the maturity parameter by the network
// name suffix reported by the node, e.g. "kaspa-testnet-11".
func coinbaseMaturityForNetwork(networkName string) uint64 {
	if strings.HasSuffix(networkName, "-11") {
		return CoinbaseMaturityTestnet11
	}
	return CoinbaseMaturity
}

// fetchSpendableUTXOs pulls the wallet's UTXO list and keeps only mature
// entries. The caller hands the result to the manager, which sorts and swaps
// it in.
func fetchSpendableUTXOs(rpcClient *utils.HttpClient, address string, coinbaseMaturity uint64) ([]utxomanager.UTXOPair, error) {
	rpcEntries, err := getUtxosByAddress(rpcClient, address)
	if err != nil {
		return nil, err
	}
	dagInfo, err := getBlockDagInfo(rpcClient)
	if err != nil {
		return nil, err
	}

	utxos := make([]utxomanager.UTXOPair, 0, len(rpcEntries))
	for _, rpcEntry := range rpcEntries {
		entry, err := parseUtxoEntry(rpcEntry.UtxoEntry)
		if err != nil {
			return nil, err
		}
		if !isUTXOSpendable(entry, dagInfo.VirtualDaaScore, coinbaseMaturity) {
			continue
		}
		outpoint, err := parseOutpoint(rpcEntry.Outpoint)
		if err != nil {
			return nil, err
		}
		utxos = append(utxos, utxomanager.UTXOPair{Outpoint: outpoint, Entry: entry})
	}
	return utxos, nil
}
