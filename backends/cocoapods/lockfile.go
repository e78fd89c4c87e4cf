package cocoapods

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lockfile is the parsed view of a Podfile.lock.
type Lockfile struct {
	versions map[string]string
}

// lockfileDoc mirrors the YAML shape of Podfile.lock. Each PODS entry is
// either a plain "Name (version)" string or a one-key map from that string
// to the pod's transitive dependencies.
type lockfileDoc struct {
	Pods []yaml.Node `yaml:"PODS"`
}

// ParseLockfile reads and parses a Podfile.lock.
func ParseLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Podfile.lock: %w", err)
	}

	var doc lockfileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Podfile.lock: %w", err)
	}

	lock := &Lockfile{versions: make(map[string]string)}
	for _, node := range doc.Pods {
		entry, err := podEntry(&node)
		if err != nil {
			return nil, err
		}
		name, version, ok := splitPodEntry(entry)
		if !ok {
			return nil, fmt.Errorf("malformed PODS entry %q in Podfile.lock", entry)
		}
		lock.versions[name] = version
	}
	return lock, nil
}

// Version returns the resolved version for a pod. Subspecs resolve through
// their root pod.
func (l *Lockfile) Version(name string) (string, bool) {
	if v, ok := l.versions[name]; ok {
		return v, true
	}
	// Subspec entries are recorded as "Root/Sub"; fall back to the root.
	for recorded, v := range l.versions {
		if root, _, found := strings.Cut(recorded, "/"); found && root == name {
			return v, true
		}
	}
	return "", false
}

// Pods returns the number of resolved pods.
func (l *Lockfile) Pods() int {
	return len(l.versions)
}

func podEntry(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.MappingNode:
		if len(node.Content) >= 1 && node.Content[0].Kind == yaml.ScalarNode {
			return node.Content[0].Value, nil
		}
	}
	return "", fmt.Errorf("unexpected PODS entry shape in Podfile.lock")
}

// splitPodEntry splits "Alamofire (5.6.4)" into name and version.
func splitPodEntry(entry string) (string, string, bool) {
	name, rest, found := strings.Cut(entry, " (")
	if !found || !strings.HasSuffix(rest, ")") {
		return "", "", false
	}
	return name, strings.TrimSuffix(rest, ")"), true
}
