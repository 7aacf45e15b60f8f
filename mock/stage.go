package mock

import (
	"context"

	"github.com/fwojciec/edubridge"
)

// Stage is a test double for edubridge.Stage.
// Set InvokeFn before calling Invoke.
type Stage struct {
	StageName string
	InvokeFn  func(ctx context.Context, input string) (string, error)
}

// Name returns StageName.
func (s *Stage) Name() string { return s.StageName }

// Invoke delegates to InvokeFn.
func (s *Stage) Invoke(ctx context.Context, input string) (string, error) {
	return s.InvokeFn(ctx, input)
}

// Runner is a test double for edubridge.Runner.
// Set RunFn before calling Run.
type Runner struct {
	RunFn func(ctx context.Context, input string) (string, error)
}

// Run delegates to RunFn.
func (r *Runner) Run(ctx context.Context, input string) (string, error) {
	return r.RunFn(ctx, input)
}

// SessionStore is a test double for edubridge.SessionStore.
// Set GetOrCreateFn before calling GetOrCreate.
type SessionStore struct {
	GetOrCreateFn func(key string) *edubridge.Session
}

// GetOrCreate delegates to GetOrCreateFn.
func (s *SessionStore) GetOrCreate(key string) *edubridge.Session {
	return s.GetOrCreateFn(key)
}
