package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments. Logs and
// error messages go to os.Stderr.
//
// Every command opens the wallet state kept in the home directory, performs a
// single operation and, if the operation changed anything, commits a new
// version of the state before returning.
//
//   $ custodycli init -home /tmp/w < genesis.json
//   $ custodycli propose-token -home /tmp/w -as $OWNER -asset USD -limit 100
//   $ custodycli vote -home /tmp/w -as $ADMIN -id 1
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"admins":           cmdAdmins,
	"balance":          cmdBalance,
	"events":           cmdEvents,
	"execute":          cmdExecute,
	"fund":             cmdFund,
	"init":             cmdInit,
	"owner":            cmdOwner,
	"proposal":         cmdProposal,
	"proposals":        cmdProposals,
	"propose-invoke":   cmdProposeInvoke,
	"propose-owner":    cmdProposeOwner,
	"propose-token":    cmdProposeToken,
	"propose-transfer": cmdProposeTransfer,
	"role":             cmdRole,
	"tokens":           cmdTokens,
	"transfer":         cmdTransfer,
	"version":          cmdVersion,
	"vote":             cmdVote,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for a custodial wallet.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		// Set CUSTODY_DEBUG to see internal errors with their stack trace.
		code, msg := errors.Report(err, env("CUSTODY_DEBUG", "") != "")
		fmt.Fprintf(os.Stderr, "Error %d: %s\n", code, msg)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, custody.Version())
	return nil
}
