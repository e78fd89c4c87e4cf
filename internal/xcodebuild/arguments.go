// Package xcodebuild wraps the external build/test tool. Invocations stream
// output events; callers consume the stream to a terminal completion event
// that carries the success or failure of the run.
package xcodebuild

import "fmt"

// Argument is one build argument contributed to an invocation. Each variant
// knows the command-line fragment it renders to, so adding a variant is a
// compile-time exhaustiveness concern rather than string plumbing at call
// sites.
type Argument interface {
	// Render returns the command-line fragment for the argument.
	Render() []string
}

// SDKArgument selects the SDK to build against.
type SDKArgument struct {
	Name string
}

// SDK builds an SDK argument, e.g. SDK("iphoneos").
func SDK(name string) SDKArgument {
	return SDKArgument{Name: name}
}

func (a SDKArgument) Render() []string {
	return []string{"-sdk", a.Name}
}

// ConfigurationArgument selects the build configuration.
type ConfigurationArgument struct {
	Name string
}

// Configuration builds a configuration argument, e.g. Configuration("Debug").
func Configuration(name string) ConfigurationArgument {
	return ConfigurationArgument{Name: name}
}

func (a ConfigurationArgument) Render() []string {
	return []string{"-configuration", a.Name}
}

// DerivedDataPathArgument redirects the build tool's intermediate output.
type DerivedDataPathArgument struct {
	Path string
}

// DerivedDataPath builds a derived-data argument.
func DerivedDataPath(path string) DerivedDataPathArgument {
	return DerivedDataPathArgument{Path: path}
}

func (a DerivedDataPathArgument) Render() []string {
	return []string{"-derivedDataPath", a.Path}
}

// SettingArgument sets a single build setting.
type SettingArgument struct {
	Key   string
	Value string
}

// Setting builds a KEY=VALUE build setting argument.
func Setting(key, value string) SettingArgument {
	return SettingArgument{Key: key, Value: value}
}

func (a SettingArgument) Render() []string {
	return []string{fmt.Sprintf("%s=%s", a.Key, a.Value)}
}

// RenderAll flattens an ordered argument list into command-line fragments,
// preserving order.
func RenderAll(args []Argument) []string {
	var out []string
	for _, arg := range args {
		out = append(out, arg.Render()...)
	}
	return out
}
