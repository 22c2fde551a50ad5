package workers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kaspagen/txgen/utils"
)

type WorkerAbs struct {
	ID        int
	Name      string
	Quit      chan bool
	RPCClient *utils.HttpClient
	Network   string // mainnet, testnet, ...
	Logger    *logrus.Entry
}

type Worker interface {
	Execute()
	GetName() string
	GetQuitChan() chan bool
	GetNetwork() string
}

func (a *WorkerAbs) Init(id int, name string, network string, rpcClient *utils.HttpClient) error {
	a.ID = id
	a.Name = name
	a.Quit = make(chan bool)
	a.RPCClient = rpcClient
	a.Network = network
	a.Logger = logrus.WithFields(logrus.Fields{
		"worker": name,
		"id":     id,
	})
	return nil
}

func (a *WorkerAbs) Execute() {
	fmt.Println("Abstract worker is executing...")
}

func (a *WorkerAbs) GetName() string {
	return a.Name
}

func (a *WorkerAbs) GetQuitChan() chan bool {
	return a.Quit
}

func (a *WorkerAbs) GetNetwork() string {
	return a.Network
}
