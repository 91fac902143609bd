package goble

import (
	"strconv"
	"strings"
	"time"

	goble "github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/go-ble/ble/linux/hci/cmd"
)

const bleTimeout = 20 * time.Second

// Pendants advertise every 150ms or so. A tight scan window keeps reconnects
// snappy without burning the radio.
var scanParams = cmd.LESetScanParameters{
	LEScanType:           1,    // Active scanning
	LEScanInterval:       0x10, // 10ms
	LEScanWindow:         0x10, // 10ms
	OwnAddressType:       0,    // Static
	ScanningFilterPolicy: 2,    // Basic filtered
}

func newDevice(id string) (goble.Device, error) {
	opts := []goble.Option{
		goble.OptListenerTimeout(bleTimeout),
		goble.OptDialerTimeout(bleTimeout),
		goble.OptScanParams(scanParams),
	}
	if id != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(id, "hci"))
		if err != nil {
			return nil, ErrInvalidAdapterID
		}
		opts = append(opts, goble.OptDeviceID(n))
	}
	return linux.NewDevice(opts...)
}

func IsAdapterError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such device") ||
		strings.Contains(msg, "network is down") ||
		strings.Contains(msg, "device is down") ||
		strings.Contains(msg, "can't init hci") ||
		strings.Contains(msg, "rf-kill")
}

func AdapterErrorHelpMessage(err error) string {
	return "Failed to use the HCI interface: \n\t" + err.Error() + "\n" +
		"Make sure the adapter is powered on (rfkill unblock bluetooth; bluetoothctl power on)\n" +
		"and that the binary may open raw HCI sockets (CAP_NET_ADMIN)."
}
