// Command nsd is an interactive analyzer for structogram pseudocode lines.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/structogram/nsd"
	"github.com/structogram/nsd/nsd/cli"
)

func main() {
	var stop context.CancelFunc
	nsd.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.Execute()
}
