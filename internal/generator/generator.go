// Package generator declares the project-generation collaborator contract.
// Generation itself is an external concern; the runner only needs a way to
// ask for it before loading the graph.
package generator

import "context"

// Generator materializes the workspace and project files for a path.
type Generator interface {
	Generate(ctx context.Context, path string) error
}
