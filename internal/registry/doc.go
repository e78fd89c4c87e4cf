// Package registry provides the central "glue" for the backend system.
//
// The Registry stores mappings between the manager identifiers used in
// dependency manifests (e.g., "carthage") and the compiled Go handlers that
// implement each package-manager backend. The installer resolves backends
// through the registry at dispatch time; compiled-in backends register
// themselves as Modules when the application starts.
package registry
