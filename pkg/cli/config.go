/*
Package cli facilitates building command-line applications that track a
measurement pendant. It defines a [Config] type that can be used to register
common command-line flags (using the Golang flag package) and environment
variable equivalents.

# Examples

	import flag

	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds command-line flags for the radio, peripheral, etc.
	flag.Parse()
	config.ReadFromEnvironment()      // Fills in missing fields using environment variables

	// Builds the adapter for the configured backend and assembles a monitor
	// around it, wiring in a forwarder for the configured endpoint.
	m, err := config.Monitor()
	if err != nil {
		panic(err)
	}

You can also use a [Flag] mask to control what [Config] fields are populated.
Note that config.Flags must be set before calling [flag.Parse] or
[Config.ReadFromEnvironment]:

	config, err = cli.NewConfig(cli.FlagAdapter | cli.FlagPeripheral) // No forwarding.
*/
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/ble"
	"github.com/nathikazad/lura-bletest/pkg/ble/goble"
	"github.com/nathikazad/lura-bletest/pkg/ble/simulated"
	"github.com/nathikazad/lura-bletest/pkg/ble/tinygo"
	"github.com/nathikazad/lura-bletest/pkg/monitor"
	"github.com/nathikazad/lura-bletest/pkg/relay"
)

// Pendants expose their counter through this service unless reconfigured.
const (
	DefaultServiceUUID        = "0000fff0-0000-1000-8000-00805f9b34fb"
	DefaultCharacteristicUUID = "0000fff1-0000-1000-8000-00805f9b34fb"
)

// Environment variable names used by [Config.ReadFromEnvironment] to set
// common parameters.
const (
	EnvBackend            = "LURA_BLE_BACKEND"
	EnvDeviceID           = "LURA_DEVICE_ID"
	EnvDeviceName         = "LURA_DEVICE_NAME"
	EnvEndpoint           = "LURA_ENDPOINT"
	EnvServiceUUID        = "LURA_SERVICE_UUID"
	EnvCharacteristicUUID = "LURA_CHARACTERISTIC_UUID"
	EnvTextMode           = "LURA_TEXT_MODE"
	EnvVerbose            = "LURA_VERBOSE"
)

// BackendName selects which Bluetooth stack backs the adapter.
type BackendName string

const (
	// BackendGoble talks to the kernel HCI socket on Linux and
	// CoreBluetooth on Darwin. It is the default.
	BackendGoble BackendName = "goble"
	// BackendTinygo rides BlueZ over D-Bus on Linux, which plays nicer
	// with desktops that have bluetoothd running.
	BackendTinygo BackendName = "tinygo"
	// BackendSimulated runs against an in-process scripted pendant.
	BackendSimulated BackendName = "simulated"
)

// Set updates a BackendName from a command-line argument.
func (b *BackendName) Set(value string) error {
	name := BackendName(strings.ToLower(value))
	switch name {
	case BackendGoble, BackendTinygo, BackendSimulated:
		*b = name
		return nil
	}
	return fmt.Errorf("unknown backend '%s'", value)
}

func (b *BackendName) String() string {
	return string(*b)
}

// Flag controls what options should be scanned from the command line and/or
// environment variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagAdapter    Flag = 1 // Enable radio backend options.
	FlagPeripheral Flag = 2 // Enable peripheral and GATT layout options.
	FlagRelay      Flag = 4 // Enable forwarding endpoint options.
	FlagAll        Flag = FlagAdapter | FlagPeripheral | FlagRelay
)

// Config fields determine which radio backend a client uses and which
// peripheral it tracks.
type Config struct {
	Flags Flag // Controls which set of environment variables/CLI flags to use.

	Backend  BackendName
	DeviceID string // Platform adapter ID, e.g. "hci0". Empty selects the default adapter.

	PeerID             string // Address of the pendant to track.
	DeviceName         string // Advertised name of the pendant to track.
	ServiceUUID        string
	CharacteristicUUID string
	TextMode           bool // Decode notifications as ASCII decimal lines.

	Endpoint string // Base URL readings are forwarded to. Empty selects relay.DefaultEndpoint.
	Verbose  bool   // Enable debug logging.
}

func NewConfig(flags Flag) (*Config, error) {
	return &Config{Flags: flags}, nil
}

func (c *Config) RegisterCommandLineFlags() {
	if c.Flags.isSet(FlagAdapter) {
		flag.Var(&c.Backend, "backend", "Bluetooth `backend` (goble|tinygo|simulated). Defaults to $LURA_BLE_BACKEND, then goble.")
		flag.StringVar(&c.DeviceID, "adapter-id", "", "Platform Bluetooth adapter `id` (e.g. hci0). Defaults to $LURA_DEVICE_ID.")
	}
	if c.Flags.isSet(FlagPeripheral) {
		flag.StringVar(&c.PeerID, "peer", "", "`Address` of the pendant to track. Defaults to the first peer matching -name.")
		flag.StringVar(&c.DeviceName, "name", "", "Advertised `name` of the pendant to track. Defaults to $LURA_DEVICE_NAME.")
		flag.StringVar(&c.ServiceUUID, "service-uuid", "", "Measurement service `UUID`. Defaults to $LURA_SERVICE_UUID, then "+DefaultServiceUUID+".")
		flag.StringVar(&c.CharacteristicUUID, "characteristic-uuid", "", "Measurement characteristic `UUID`. Defaults to $LURA_CHARACTERISTIC_UUID, then "+DefaultCharacteristicUUID+".")
		flag.BoolVar(&c.TextMode, "text", false, "Decode notifications as ASCII decimal lines instead of raw bytes. Defaults to $LURA_TEXT_MODE.")
	}
	if c.Flags.isSet(FlagRelay) {
		flag.StringVar(&c.Endpoint, "endpoint", "", "Forward readings to this base `URL` (POSTs to <URL>/number). Defaults to $LURA_ENDPOINT, then "+relay.DefaultEndpoint+".")
	}
}

// ReadFromEnvironment populates c using environment variables. Values that
// are already populated are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() (or other initialization
// method) will prevent the environment from overriding explicit command-line
// parameters.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagAdapter) {
		if c.Backend == "" {
			if err := c.Backend.Set(os.Getenv(EnvBackend)); err == nil {
				log.Debug("Set backend to '%s'", c.Backend)
			}
		}
		if c.DeviceID == "" {
			c.DeviceID = os.Getenv(EnvDeviceID)
			log.Debug("Set adapter ID to '%s'", c.DeviceID)
		}
	}
	if c.Flags.isSet(FlagPeripheral) {
		if c.DeviceName == "" {
			c.DeviceName = os.Getenv(EnvDeviceName)
			log.Debug("Set pendant name to '%s'", c.DeviceName)
		}
		if c.ServiceUUID == "" {
			c.ServiceUUID = os.Getenv(EnvServiceUUID)
			log.Debug("Set service UUID to '%s'", c.ServiceUUID)
		}
		if c.CharacteristicUUID == "" {
			c.CharacteristicUUID = os.Getenv(EnvCharacteristicUUID)
			log.Debug("Set characteristic UUID to '%s'", c.CharacteristicUUID)
		}
		if !c.TextMode {
			_, c.TextMode = os.LookupEnv(EnvTextMode)
		}
	}
	if c.Flags.isSet(FlagRelay) {
		if c.Endpoint == "" {
			c.Endpoint = os.Getenv(EnvEndpoint)
			log.Debug("Set endpoint to '%s'", c.Endpoint)
		}
	}
	if !c.Verbose {
		_, c.Verbose = os.LookupEnv(EnvVerbose)
	}
}

// Adapter opens the configured radio backend.
func (c *Config) Adapter() (ble.Adapter, error) {
	switch c.Backend {
	case "", BackendGoble:
		return goble.NewAdapter(c.DeviceID)
	case BackendTinygo:
		return tinygo.NewAdapter(c.DeviceID)
	case BackendSimulated:
		return c.simulatedAdapter(), nil
	}
	return nil, fmt.Errorf("unknown backend '%s'", c.Backend)
}

// simulatedAdapter builds an in-process radio with one scripted pendant that
// matches the configured GATT layout.
func (c *Config) simulatedAdapter() *simulated.Adapter {
	adapter := simulated.New()
	adapter.AddPeripheral(&simulated.Peripheral{
		LocalName:          c.DeviceName,
		ServiceUUID:        c.serviceUUID(),
		CharacteristicUUID: c.characteristicUUID(),
		Text:               c.TextMode,
	})
	return adapter
}

// Monitor builds the adapter for the configured backend and assembles a
// monitor around it. Readings are forwarded to the configured endpoint,
// falling back to relay.DefaultEndpoint.
func (c *Config) Monitor() (*monitor.Monitor, error) {
	adapter, err := c.Adapter()
	if err != nil {
		return nil, err
	}
	mode := relay.ModeByte
	if c.TextMode {
		mode = relay.ModeText
	}
	forwarder := relay.New(c.Endpoint)
	m, err := monitor.New(adapter, monitor.Config{
		ServiceUUID:        c.serviceUUID(),
		CharacteristicUUID: c.characteristicUUID(),
		Decode:             mode,
	}, nil, forwarder)
	if err != nil {
		adapter.Close()
		return nil, err
	}
	return m, nil
}

func (c *Config) serviceUUID() string {
	if c.ServiceUUID == "" {
		return DefaultServiceUUID
	}
	return c.ServiceUUID
}

func (c *Config) characteristicUUID() string {
	if c.CharacteristicUUID == "" {
		return DefaultCharacteristicUUID
	}
	return c.CharacteristicUUID
}
