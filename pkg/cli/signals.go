package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the status used when a second signal forces exit.
const ExitInterrupted = 130

// SetupSignalHandler returns a context canceled on the first SIGINT or
// SIGTERM. A second signal exits immediately with ExitInterrupted, so a
// watch stuck draining its queue can still be stopped from the terminal.
func SetupSignalHandler() context.Context {
	return notifyContext(context.Background(), os.Exit, os.Interrupt, syscall.SIGTERM)
}

func notifyContext(parent context.Context, exit func(int), sigs ...os.Signal) context.Context {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, sigs...)

	go func() {
		select {
		case <-ch:
			cancel()
		case <-parent.Done():
			signal.Stop(ch)
			cancel()
			return
		}
		<-ch
		exit(ExitInterrupted)
	}()

	return ctx
}
