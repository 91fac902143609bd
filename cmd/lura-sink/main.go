// Command lura-sink is a reference ingest server for forwarded readings.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/readings"
)

const defaultPort = 4999

const (
	EnvHost    = "LURA_SINK_HOST"
	EnvPort    = "LURA_SINK_PORT"
	EnvVerbose = "LURA_VERBOSE"
)

type SinkConfig struct {
	host     string
	port     int
	capacity int
	verbose  bool
}

var (
	sinkConfig = &SinkConfig{}
)

func init() {
	flag.StringVar(&sinkConfig.host, "host", "localhost", "Server `hostname`")
	flag.IntVar(&sinkConfig.port, "port", defaultPort, "`Port` to listen on")
	flag.IntVar(&sinkConfig.capacity, "capacity", readings.DefaultCapacity, "`Number` of readings kept for GET /numbers")
	flag.BoolVar(&sinkConfig.verbose, "verbose", false, "Enable verbose logging")
}

func Usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [OPTION...]\n", os.Args[0])
	fmt.Fprintf(out, "\nA server that collects readings posted by the pendant monitor.\n")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Point the monitor at it with -endpoint, then:")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  POST /number   ingest a reading, body {\"number\": N}")
	fmt.Fprintln(out, "  GET  /numbers  recent readings, newest first")
	fmt.Fprintln(out, "  GET  /live     WebSocket feed of readings as they arrive")
	fmt.Fprintln(out, "  GET  /healthz  server health")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
}

// readFromEnvironment applies configuration from environment variables.
// Values are not overwritten.
func readFromEnvironment() error {
	if sinkConfig.host == "localhost" {
		if host, ok := os.LookupEnv(EnvHost); ok {
			sinkConfig.host = host
		}
	}
	if sinkConfig.port == defaultPort {
		if port, ok := os.LookupEnv(EnvPort); ok {
			var err error
			sinkConfig.port, err = strconv.Atoi(port)
			if err != nil {
				return fmt.Errorf("invalid port: %s", port)
			}
		}
	}
	if !sinkConfig.verbose {
		if verbose, ok := os.LookupEnv(EnvVerbose); ok {
			sinkConfig.verbose = verbose != "false" && verbose != "0"
		}
	}
	return nil
}

func main() {
	flag.Usage = Usage
	flag.Parse()

	if err := readFromEnvironment(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if sinkConfig.verbose {
		log.SetLevel(log.LevelDebug)
	}

	server := newServer(sinkConfig.capacity)
	addr := fmt.Sprintf("%s:%d", sinkConfig.host, sinkConfig.port)
	log.Info("Listening on %s", addr)
	log.Error("Server stopped: %s", http.ListenAndServe(addr, server))
	os.Exit(1)
}
