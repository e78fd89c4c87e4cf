package manifest

// --- Manifest File Schema ---

// dependencyBlock represents a `dependency` block from a Dependencies.hcl file.
type dependencyBlock struct {
	Name        string   `hcl:"name,label"`
	Manager     string   `hcl:"manager"`
	Source      string   `hcl:"source,optional"`
	Path        string   `hcl:"path,optional"`
	Requirement string   `hcl:"requirement,optional"`
	Platforms   []string `hcl:"platforms,optional"`
}

// manifestFile represents the top-level structure of a Dependencies.hcl file.
type manifestFile struct {
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
}
