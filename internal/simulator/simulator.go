// Package simulator locates simulated devices for test destinations.
// Finding a device is the one point in the test flow that may block: when no
// device is immediately available the locator waits, bounded by the context
// and a default timeout, for one to boot or become free.
package simulator

import (
	"errors"
	"time"
)

// DefaultTimeout bounds how long FindAvailable waits for a device when the
// caller's context carries no earlier deadline.
const DefaultTimeout = 2 * time.Minute

// ErrNoDeviceAvailable is returned when no matching device becomes available
// within the timeout.
var ErrNoDeviceAvailable = errors.New("no simulator device available")

// DeviceState is the lifecycle state reported for a device.
type DeviceState string

const (
	StateShutdown DeviceState = "Shutdown"
	StateBooting  DeviceState = "Booting"
	StateBooted   DeviceState = "Booted"
)

// Device is one simulated device.
type Device struct {
	Name      string
	UDID      string
	Platform  string
	OSVersion string
	State     DeviceState
}

// Available reports whether the device can host a test run right away.
func (d Device) Available() bool {
	return d.State == StateBooted || d.State == StateShutdown
}
