package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kaspagen/txgen/utils"
	"github.com/kaspagen/txgen/wallet"
	"github.com/kaspagen/txgen/workers"
)

const (
	defaultRPCServer     = "localhost:16210"
	defaultAddressPrefix = "kaspatest"
)

var (
	privateKeyHex string
	tps           uint64
	rpcServer     string
)

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "txgen",
		Short:        "Continuously generates and submits wallet transactions to load-test a node",
		RunE:         run,
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&privateKeyHex, "private-key", "k", os.Getenv("PRIVATE_KEY"), "Private key in hex format")
	rootCmd.Flags().Uint64VarP(&tps, "tps", "t", envUint("TPS", 1), "Transactions per second")
	rootCmd.Flags().StringVarP(&rpcServer, "rpcserver", "s", envStr("RPCSERVER", defaultRPCServer), "RPC server")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	runtime.GOMAXPROCS(runtime.NumCPU())

	myEnv, err := godotenv.Read()
	if err == nil {
		fmt.Println("=========Config============")
		for key, value := range myEnv {
			fmt.Println(key + ": " + value)
		}
		fmt.Println("=========End============")
	}

	prefix := envStr("ADDRESS_PREFIX", defaultAddressPrefix)

	if privateKeyHex == "" {
		account, err := wallet.GenerateAccount(prefix)
		if err != nil {
			return err
		}
		logrus.Infof(
			"Generated private key %v and address %v. Send some funds to this address and rerun with `--private-key %v`",
			account.PrivateKeyStr(), account.Address(), account.PrivateKeyStr(),
		)
		return nil
	}

	account, err := wallet.NewAccountFromPrivateKeyStr(privateKeyHex, prefix)
	if err != nil {
		logrus.Errorf("Malformed private key: %v", err)
		return err
	}
	logrus.Infof("Using address %v", account.Address())

	rpcClient := utils.NewHttpClient(fmt.Sprintf("http://%v", rpcServer), "", "", "")

	generator := &workers.TxGeneratorWorker{}
	err = generator.Init(
		1, "Tx Generator", rpcClient, account, tps,
		envStr("REFRESH_FAIL_POLICY", workers.RefreshFailPolicyFatal),
	)
	if err != nil {
		msg := fmt.Sprintf("Can't init Tx Generator - with err: %v", err)
		logrus.Error(msg)
		utils.SendSlackNotification(msg, utils.AlertNotification)
		return err
	}

	s := NewServer([]workers.Worker{generator})
	s.Run()
	for range s.workers {
		<-s.finish
	}
	fmt.Println("Server stopped gracefully!")
	return nil
}

func envStr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
