package app

import (
	"github.com/lm2s/tuist/backends/carthage"
	"github.com/lm2s/tuist/backends/cocoapods"
	"github.com/lm2s/tuist/backends/swiftpm"
	"github.com/lm2s/tuist/internal/registry"
	"github.com/lm2s/tuist/internal/system"
)

// coreModules is the definitive list of backend modules that are compiled
// into the tuist binary.
func coreModules(runner system.Runner) []registry.Module {
	return []registry.Module{
		&cocoapods.Module{Runner: runner},
		&carthage.Module{Runner: runner},
		&swiftpm.Module{Runner: runner},
	}
}
