package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lm2s/tuist/internal/ctxlog"
	"github.com/lm2s/tuist/internal/system"
)

// Query narrows which devices a lookup may return. Zero fields match
// anything.
type Query struct {
	Platform  string
	OSVersion string
	Name      string
}

// Locator finds an available device for a test destination.
type Locator interface {
	// FindAvailable blocks until a device matching the query is available
	// or the context/timeout expires.
	FindAvailable(ctx context.Context, query Query) (Device, error)
}

// SimctlLocator lists devices through the `simctl` tool.
type SimctlLocator struct {
	runner system.Runner
	// pollInterval between device list refreshes while waiting.
	pollInterval time.Duration
}

// NewLocator returns a simctl-backed Locator.
func NewLocator(runner system.Runner) *SimctlLocator {
	return &SimctlLocator{runner: runner, pollInterval: 2 * time.Second}
}

// FindAvailable implements Locator. The wait is a single blocking call from
// the caller's point of view; the polling below is an implementation detail
// bounded by DefaultTimeout unless the context expires first.
func (l *SimctlLocator) FindAvailable(ctx context.Context, query Query) (Device, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Locating simulator device.", "platform", query.Platform, "os", query.OSVersion, "name", query.Name)

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	for {
		devices, err := l.list(ctx)
		if err != nil {
			return Device{}, err
		}
		if device, ok := pick(devices, query); ok {
			logger.Debug("Simulator device resolved.", "name", device.Name, "udid", device.UDID)
			return device, nil
		}

		select {
		case <-ctx.Done():
			return Device{}, fmt.Errorf("%w: platform %s", ErrNoDeviceAvailable, query.Platform)
		case <-time.After(l.pollInterval):
		}
	}
}

// pick selects a matching available device, preferring one that is already
// booted over one that would need to boot first.
func pick(devices []Device, query Query) (Device, bool) {
	var fallback *Device
	for _, device := range devices {
		if !query.matches(device) || !device.Available() {
			continue
		}
		if device.State == StateBooted {
			return device, true
		}
		if fallback == nil {
			d := device
			fallback = &d
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Device{}, false
}

func (q Query) matches(d Device) bool {
	if q.Platform != "" && !strings.EqualFold(q.Platform, d.Platform) {
		return false
	}
	if q.OSVersion != "" && q.OSVersion != d.OSVersion {
		return false
	}
	if q.Name != "" && q.Name != d.Name {
		return false
	}
	return true
}

// simctlList mirrors the JSON shape of `simctl list devices --json`.
type simctlList struct {
	Devices map[string][]struct {
		Name        string `json:"name"`
		UDID        string `json:"udid"`
		State       string `json:"state"`
		IsAvailable bool   `json:"isAvailable"`
	} `json:"devices"`
}

func (l *SimctlLocator) list(ctx context.Context) ([]Device, error) {
	result, err := l.runner.Run(ctx, system.Command{
		Name: "xcrun",
		Args: []string{"simctl", "list", "devices", "--json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list simulator devices: %w", err)
	}

	var parsed simctlList
	if err := json.Unmarshal([]byte(result.Stdout), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode simctl output: %w", err)
	}

	var devices []Device
	for runtime, entries := range parsed.Devices {
		platform, osVersion := parseRuntime(runtime)
		for _, entry := range entries {
			if !entry.IsAvailable {
				continue
			}
			devices = append(devices, Device{
				Name:      entry.Name,
				UDID:      entry.UDID,
				Platform:  platform,
				OSVersion: osVersion,
				State:     DeviceState(entry.State),
			})
		}
	}
	return devices, nil
}

// parseRuntime splits a runtime identifier such as
// "com.apple.CoreSimulator.SimRuntime.iOS-17-2" into ("ios", "17.2").
func parseRuntime(runtime string) (string, string) {
	last := runtime
	if idx := strings.LastIndex(runtime, "."); idx >= 0 {
		last = runtime[idx+1:]
	}
	parts := strings.SplitN(last, "-", 2)
	platform := strings.ToLower(parts[0])
	version := ""
	if len(parts) == 2 {
		version = strings.ReplaceAll(parts[1], "-", ".")
	}
	return platform, version
}
