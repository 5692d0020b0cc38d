package main

import (
	"log"
	"os"

	"github.com/trezcool/masomo-admin/core"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	translator := core.NewTranslator()

	// start CLI
	cli := commandLine{
		out:      os.Stdout,
		validate: core.NewValidator(translator),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
