package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/roffe/goobd/cmd/obdtool/cmd"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, os.Interrupt)
	go func() {
		s := <-quitChan
		log.Printf("got %v, exiting", s)
		cancel()
		// Failsafe if a command never notices the cancel.
		<-time.After(15 * time.Second)
		log.Fatal("shutdown stalled, forcefully exiting")
	}()
	cmd.Execute(ctx)
}
