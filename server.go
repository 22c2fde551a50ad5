package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaspagen/txgen/workers"
)

type Server struct {
	quit    chan os.Signal
	finish  chan bool
	workers []workers.Worker
}

func NewServer(listWorkers []workers.Worker) *Server {
	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	return &Server{
		quit:    quitChan,
		finish:  make(chan bool, len(listWorkers)),
		workers: listWorkers,
	}
}

func (s *Server) NotifyQuitSignal(workers []workers.Worker) {
	sig := <-s.quit
	fmt.Printf("Caught sig: %+v \n", sig)
	// notify all workers about quit signal
	for _, a := range workers {
		a.GetQuitChan() <- true
	}
}

func (s *Server) Run() {
	workers := s.workers
	go s.NotifyQuitSignal(workers)
	for _, a := range workers {
		go executeWorker(s.finish, a)
	}
}

// executeWorker runs a worker until it returns; generator workers only
// return after a quit signal or a fatal error.
func executeWorker(finish chan bool, worker workers.Worker) {
	worker.Execute()
	fmt.Printf("Task for %s done! \n", worker.GetName())
	finish <- true
}
