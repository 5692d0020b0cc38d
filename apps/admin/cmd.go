package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/masomo-admin/core/auth"
	"github.com/trezcool/masomo-admin/storage/seed"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  hashpassword - hash the demo account's password (prompted next), for <ENV>_DEMO_PASSWORDHASH (eg. DEV_DEMO_PASSWORDHASH)")
	fmt.Fprintln(cli.out, "  seed -collection NAME - check the seed fixtures and list the ids of one collection")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedCmd.SetOutput(cli.out)
	seedCollection := seedCmd.String("collection", "", "One of: "+strings.Join(seed.Collections, ", "))

	switch args[1] {
	case "hashpassword":
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedCollection == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.listSeed(*seedCollection)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) hashPassword(pwd string) error {
	hash, err := auth.HashPassword(pwd)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(hash))
	return nil
}

// listSeed loads (and validates) every fixture, then prints the ids of collection.
func (cli *commandLine) listSeed(collection string) error {
	data, err := seed.Load(cli.validate)
	if err != nil {
		return err
	}
	ids, err := seed.IDs(data, collection)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %d\n", collection, len(ids))
	for _, id := range ids {
		fmt.Fprintln(cli.out, id)
	}
	return nil
}
