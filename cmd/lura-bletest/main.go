// Command lura-bletest tracks a pendant over BLE and relays its readings.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/shlex"
	"golang.org/x/term"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/cli"
	"github.com/nathikazad/lura-bletest/pkg/monitor"
)

const usage = `
 * The monitor starts scanning as soon as the program launches and keeps
   running between commands. Without a COMMAND, drops into an interactive
   shell.
 * Commands that need a tracked pendant wait for one matching -peer or -name
   to advertise; run 'select' to pick one by hand.`

func Usage() {
	fmt.Printf("Usage: %s [OPTION...] [COMMAND...]\n", os.Args[0])
	fmt.Printf("\nRun %s help COMMAND for more information. Valid COMMANDs:\n", os.Args[0])
	maxLength := 0
	var names []string
	for name := range commands {
		names = append(names, name)
		if len(name) > maxLength {
			maxLength = len(name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		info := commands[name]
		fmt.Printf("  %s%s %s\n", name, strings.Repeat(" ", maxLength-len(name)), info.help)
	}
	fmt.Printf("%s\n\nOPTIONs:\n", usage)
	flag.PrintDefaults()
}

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

func runCommand(m *monitor.Monitor, config *cli.Config, args []string, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := execute(ctx, m, config, args); err != nil {
		writeErr("Failed to execute command: %s", err)
		return 1
	}
	return 0
}

func runInteractiveShell(m *monitor.Monitor, config *cli.Config, timeout time.Duration) int {
	// Skip the prompt when stdin is piped in so scripted sessions read clean.
	prompt := func() {}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = func() { fmt.Printf("> ") }
	}
	scanner := bufio.NewScanner(os.Stdin)
	for prompt(); scanner.Scan(); prompt() {
		args, err := shlex.Split(scanner.Text())
		if err != nil {
			writeErr("Invalid command: %s", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			return 0
		}
		runCommand(m, config, args, timeout)
	}
	if err := scanner.Err(); err != nil {
		writeErr("Error reading command: %s", err)
		return 1
	}
	return 0
}

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	var (
		debug          bool
		simulate       bool
		commandTimeout time.Duration
	)

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %s\n", err)
		os.Exit(1)
	}

	flag.Usage = Usage
	flag.BoolVar(&debug, "debug", false, "Enable verbose debugging messages")
	flag.BoolVar(&simulate, "simulate", false, "Run against an in-process simulated pendant instead of the platform radio")
	flag.DurationVar(&commandTimeout, "command-timeout", 30*time.Second, "Set timeout for individual commands")
	config.RegisterCommandLineFlags()
	flag.Parse()

	if !debug {
		if debugEnv, ok := os.LookupEnv(cli.EnvVerbose); ok {
			debug = debugEnv != "false" && debugEnv != "0"
		}
	}
	if debug {
		log.SetLevel(log.LevelDebug)
	}
	config.ReadFromEnvironment()
	if simulate {
		config.Backend = cli.BackendSimulated
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "help" {
		if len(args) == 1 {
			Usage()
			status = 0
			return
		}
		info, ok := commands[args[1]]
		if !ok {
			writeErr("Unrecognized command: %s", args[1])
			return
		}
		info.Usage(args[1])
		status = 0
		return
	}

	m, err := config.Monitor()
	if err != nil {
		writeErr("Error: %s", err)
		if strings.Contains(err.Error(), "operation not permitted") {
			// The BLE stack resets the HCI device on startup, which requires
			// CAP_NET_ADMIN.
			writeErr("\nTry again after granting this application CAP_NET_ADMIN:\n\n\tsudo setcap 'cap_net_admin=eip' \"$(which %s)\"", os.Args[0])
		}
		return
	}
	if err := m.Start(context.Background()); err != nil {
		writeErr("Failed to start monitor: %s", err)
		return
	}
	defer m.Stop()

	if flag.NArg() > 0 {
		status = runCommand(m, config, flag.Args(), commandTimeout)
	} else {
		status = runInteractiveShell(m, config, commandTimeout)
	}
}
