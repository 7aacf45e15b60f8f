// Package mock provides test doubles for edubridge interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/edubridge"
)

// Interface compliance checks.
var (
	_ edubridge.Generator    = (*Generator)(nil)
	_ edubridge.Stage        = (*Stage)(nil)
	_ edubridge.Runner       = (*Runner)(nil)
	_ edubridge.SessionStore = (*SessionStore)(nil)
)

// Generator is a test double for edubridge.Generator.
// Set GenerateFn before calling Generate.
type Generator struct {
	GenerateFn func(ctx context.Context, req edubridge.GenerateRequest) (string, error)
}

// Generate delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, req edubridge.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}
