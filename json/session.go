// Package json exports session transcripts as JSON.
//
// Transcripts are write-only from the program's point of view: sessions
// live in memory and are never restored from disk. UnmarshalSession exists
// so exported files can be inspected and verified.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/edubridge"
)

// envelope is the v1 wire format for an exported session.
type envelope struct {
	Version   int       `json:"version"`
	Key       string    `json:"key"`
	Limit     int       `json:"limit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Turns     []turnDTO `json:"turns"`
}

type turnDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s edubridge.Session) ([]byte, error) {
	env := envelope{
		Version:   1,
		Key:       s.Key,
		Limit:     s.Limit,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Turns:     make([]turnDTO, len(s.History)),
	}
	for i, t := range s.History {
		if !validRole(t.Role) {
			return nil, fmt.Errorf("turn %d: unknown role: %q", i, t.Role)
		}
		env.Turns[i] = turnDTO{Role: string(t.Role), Text: t.Text, Timestamp: t.Timestamp}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (edubridge.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return edubridge.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return edubridge.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	turns := make([]edubridge.Turn, len(env.Turns))
	for i, dto := range env.Turns {
		role := edubridge.Role(dto.Role)
		if !validRole(role) {
			return edubridge.Session{}, fmt.Errorf("turn %d: unknown role: %q", i, dto.Role)
		}
		turns[i] = edubridge.Turn{Role: role, Text: dto.Text, Timestamp: dto.Timestamp}
	}
	return edubridge.Session{
		Key:       env.Key,
		History:   turns,
		Limit:     env.Limit,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
	}, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
func Save(path string, s edubridge.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func validRole(r edubridge.Role) bool {
	return r == edubridge.RoleUser || r == edubridge.RoleAssistant
}
