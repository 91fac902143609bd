package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nathikazad/lura-bletest/pkg/ble"
	"github.com/nathikazad/lura-bletest/pkg/cli"
	"github.com/nathikazad/lura-bletest/pkg/monitor"
)

var (
	// ErrCommandLineArgs indicates a command's arguments were malformed.
	// Commands should return this error or wrap it when they fail to parse an
	// argument, so the dispatcher knows to print the command's usage message.
	ErrCommandLineArgs = errors.New("invalid command line arguments")

	// ErrUnknownCommand indicates a command was not found in the command table.
	ErrUnknownCommand = errors.New("unrecognized command")

	// ErrNoPendant indicates a command needs a tracked pendant but none was
	// selected and no -peer or -name was configured to pick one automatically.
	ErrNoPendant = errors.New("no pendant selected (run 'select', or set -peer or -name)")
)

const trackingPollInterval = 200 * time.Millisecond

// Argument describes a command-line argument.
type Argument struct {
	name string
	help string
}

// Handler is a command-line handler function.
type Handler func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error

// Command describes a command-line command.
type Command struct {
	help            string
	requiresPendant bool // True if the command needs a tracked pendant
	args            []Argument
	optional        []Argument
	handler         Handler
}

// Usage prints help information for the command.
func (c *Command) Usage(name string) {
	fmt.Printf("Usage: %s", name)
	maxLength := 0
	for _, arg := range c.args {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" [")
	}
	for _, arg := range c.optional {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	if len(c.optional) > 0 {
		fmt.Printf(" ]")
	}
	fmt.Printf("\n%s\n", c.help)
	maxLength++
	for _, arg := range c.args {
		padding := strings.Repeat(" ", maxLength-len(arg.name))
		fmt.Printf("    %s%s%s\n", arg.name, padding, arg.help)
	}
	for _, arg := range c.optional {
		padding := strings.Repeat(" ", maxLength-len(arg.name))
		fmt.Printf("    %s%s%s (optional)\n", arg.name, padding, arg.help)
	}
}

func checkReadiness(commandName string, m *monitor.Monitor) (*Command, error) {
	info, ok := commands[commandName]
	if !ok {
		return nil, ErrUnknownCommand
	}
	if info.requiresPendant && m.Snapshot().PeerID == "" {
		return nil, ErrNoPendant
	}
	return info, nil
}

func execute(ctx context.Context, m *monitor.Monitor, config *cli.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("missing COMMAND")
	}

	info, err := checkReadiness(args[0], m)
	if err != nil {
		return err
	}

	if len(args)-1 < len(info.args) || len(args)-1 > len(info.args)+len(info.optional) {
		writeErr("Invalid number of command line arguments: %d (%d required, %d optional).", len(args)-1, len(info.args), len(info.optional))
		err = ErrCommandLineArgs
	} else {
		keywords := make(map[string]string)
		for i, argInfo := range info.args {
			keywords[argInfo.name] = args[i+1]
		}
		index := len(info.args) + 1
		for _, argInfo := range info.optional {
			if index >= len(args) {
				break
			}
			keywords[argInfo.name] = args[index]
			index++
		}
		err = info.handler(ctx, m, config, keywords)
	}

	if errors.Is(err, ErrCommandLineArgs) {
		info.Usage(args[0])
	}
	return err
}

// parseSeconds converts a SECONDS argument into a duration.
func parseSeconds(str string) (time.Duration, error) {
	seconds, err := strconv.Atoi(str)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("%w: SECONDS must be a positive integer", ErrCommandLineArgs)
	}
	return time.Duration(seconds) * time.Second, nil
}

// ensureTracking makes sure the monitor is tracking a pendant before a
// command that needs one runs. An explicit address wins over -peer, which
// wins over the first discovered peer advertising -name. When the chosen
// pendant hasn't advertised yet, waits for it until ctx expires.
func ensureTracking(ctx context.Context, m *monitor.Monitor, config *cli.Config, address string) error {
	snapshot := m.Snapshot()
	if snapshot.PeerID != "" {
		if address == "" || strings.EqualFold(snapshot.PeerID, address) {
			return nil
		}
		return m.SelectPeer(address)
	}
	if address == "" {
		address = config.PeerID
	}
	if address == "" && config.DeviceName == "" {
		return ErrNoPendant
	}

	ticker := time.NewTicker(trackingPollInterval)
	defer ticker.Stop()
	for {
		for _, peer := range m.Snapshot().Peers {
			if matchesPeer(peer, address, config.DeviceName) {
				return m.SelectPeer(peer.ID)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for the pendant to advertise")
		case <-ticker.C:
		}
	}
}

func matchesPeer(peer ble.Peer, address, name string) bool {
	if address != "" {
		return strings.EqualFold(peer.ID, address)
	}
	return name != "" && strings.EqualFold(peer.LocalName, name)
}

func printPeers(m *monitor.Monitor) {
	snapshot := m.Snapshot()
	if len(snapshot.Peers) == 0 {
		fmt.Println("No peers discovered yet. Candidates are only collected while discovering.")
		return
	}
	for _, peer := range snapshot.Peers {
		name := peer.LocalName
		if name == "" {
			name = "(no name)"
		}
		suffix := ""
		if !peer.Connectable {
			suffix = " [not connectable]"
		}
		fmt.Printf("%s  %4d dBm  %s%s\n", peer.ID, peer.RSSI, name, suffix)
	}
}

func printStatus(m *monitor.Monitor) {
	snapshot := m.Snapshot()
	fmt.Printf("State:    %s\n", snapshot.State)
	fmt.Printf("Radio:    %s\n", snapshot.Radio)
	if snapshot.PeerID == "" {
		fmt.Printf("Pendant:  none\n")
	} else {
		name := snapshot.PeerName
		if name == "" {
			name = "(no name)"
		}
		fmt.Printf("Pendant:  %s  %s\n", snapshot.PeerID, name)
		if snapshot.Connected {
			fmt.Printf("Link:     up (MTU %d)\n", snapshot.MTU)
		} else {
			fmt.Printf("Link:     down\n")
		}
	}
	fmt.Printf("Buffered: %d of %d readings\n", m.Readings().Len(), m.Readings().Capacity())
	forwarder := m.Forwarder()
	stats := forwarder.Stats()
	fmt.Printf("Relay:    %s (%d sent, %d throttled, %d skipped, %d failed)\n",
		forwarder.Endpoint(), stats.Sent, stats.Throttled, stats.Skipped, stats.Failed)
	if snapshot.Err != nil {
		fmt.Printf("Last err: %s\n", snapshot.Err)
	}
}

var commands = map[string]*Command{
	"scan": {
		help:     "Collect advertising peers for a few seconds, then list them",
		optional: []Argument{{name: "SECONDS", help: "How long to collect. Defaults to 5."}},
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			wait := 5 * time.Second
			if str, ok := args["SECONDS"]; ok {
				var err error
				if wait, err = parseSeconds(str); err != nil {
					return err
				}
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			printPeers(m)
			return nil
		},
	},
	"peers": {
		help: "List the peers discovered so far",
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			printPeers(m)
			return nil
		},
	},
	"select": {
		help:     "Track a pendant, reconnecting whenever the link drops",
		optional: []Argument{{name: "ADDRESS", help: "Peer to track. Defaults to -peer, then the first peer advertising -name."}},
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			if err := ensureTracking(ctx, m, config, args["ADDRESS"]); err != nil {
				return err
			}
			fmt.Printf("Tracking %s\n", m.Snapshot().PeerID)
			return nil
		},
	},
	"status": {
		help: "Show the session state, tracked pendant, and relay counters",
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			printStatus(m)
			return nil
		},
	},
	"stream": {
		help:     "Track the pendant and print readings as they arrive",
		optional: []Argument{{name: "SECONDS", help: "How long to stream. Defaults to the command timeout."}},
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			if err := ensureTracking(ctx, m, config, ""); err != nil {
				return err
			}
			if str, ok := args["SECONDS"]; ok {
				wait, err := parseSeconds(str)
				if err != nil {
					return err
				}
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case update := <-m.Updates():
					if update.Token != "" {
						fmt.Println(update.Token)
					}
				}
			}
		},
	},
	"watch": {
		help:     "Print session events: state changes, discoveries, readings, errors",
		optional: []Argument{{name: "SECONDS", help: "How long to watch. Defaults to the command timeout."}},
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			if str, ok := args["SECONDS"]; ok {
				wait, err := parseSeconds(str)
				if err != nil {
					return err
				}
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}
			for {
				select {
				case <-ctx.Done():
					return nil
				case update := <-m.Updates():
					switch {
					case update.Peer != nil:
						name := update.Peer.LocalName
						if name == "" {
							name = "(no name)"
						}
						fmt.Printf("[%s] discovered %s  %s\n", update.State, update.Peer.ID, name)
					case update.Token != "":
						fmt.Printf("[%s] reading %s\n", update.State, update.Token)
					case update.Err != nil:
						fmt.Printf("[%s] error: %s\n", update.State, update.Err)
					default:
						fmt.Printf("[%s]\n", update.State)
					}
				}
			}
		},
	},
	"readings": {
		help: "Print buffered readings, newest first",
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			entries := m.Readings().Snapshot()
			if len(entries) == 0 {
				fmt.Println("No readings buffered.")
				return nil
			}
			for _, reading := range entries {
				fmt.Printf("%s  %s\n", reading.At.Format(time.RFC3339), reading.Token)
			}
			return nil
		},
	},
	"endpoint": {
		help:     "Show or change the URL readings are forwarded to",
		optional: []Argument{{name: "URL", help: "New ingest base URL. Readings POST to <URL>/number."}},
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			forwarder := m.Forwarder()
			if url, ok := args["URL"]; ok {
				forwarder.SetEndpoint(url)
			}
			fmt.Println(forwarder.Endpoint())
			return nil
		},
	},
	"disconnect": {
		help:            "Drop the link but keep tracking; the monitor reconnects",
		requiresPendant: true,
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			return m.Disconnect()
		},
	},
	"forget": {
		help:            "Stop tracking the pendant and return to discovery",
		requiresPendant: true,
		handler: func(ctx context.Context, m *monitor.Monitor, config *cli.Config, args map[string]string) error {
			return m.Forget()
		},
	},
}
