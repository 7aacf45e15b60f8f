package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/edubridge"
	edujson "github.com/fwojciec/edubridge/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() edubridge.Session {
	created := time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)
	ts1 := time.Date(2026, 2, 18, 12, 0, 1, 0, time.UTC)
	ts2 := time.Date(2026, 2, 18, 12, 0, 9, 0, time.UTC)
	return edubridge.Session{
		Key:       "capstone_student_session",
		CreatedAt: created,
		UpdatedAt: ts2,
		History: []edubridge.Turn{
			{Role: edubridge.RoleUser, Text: "Explain energy storage.", Timestamp: ts1},
			{Role: edubridge.RoleAssistant, Text: "## Summary\nBatteries.", Timestamp: ts2},
		},
	}
}

func TestMarshalSession_RoundTrip(t *testing.T) {
	t.Parallel()
	session := testSession()

	data, err := edujson.MarshalSession(session)
	require.NoError(t, err)

	got, err := edujson.UnmarshalSession(data)
	require.NoError(t, err)
	assert.Equal(t, session.Key, got.Key)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, session.UpdatedAt.Equal(got.UpdatedAt))
	require.Len(t, got.History, 2)
	assert.Equal(t, edubridge.RoleUser, got.History[0].Role)
	assert.Equal(t, "## Summary\nBatteries.", got.History[1].Text)
}

func TestMarshalSession_WireFormat(t *testing.T) {
	t.Parallel()
	data, err := edujson.MarshalSession(testSession())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(1), raw["version"])
	assert.Equal(t, "capstone_student_session", raw["key"])
	assert.NotContains(t, raw, "limit")

	turns := raw["turns"].([]any)
	require.Len(t, turns, 2)
	turn0 := turns[0].(map[string]any)
	assert.Equal(t, "user", turn0["role"])
	assert.Equal(t, "Explain energy storage.", turn0["text"])
	assert.Equal(t, "2026-02-18T12:00:01Z", turn0["timestamp"])
}

func TestMarshalSession_EmptyHistory(t *testing.T) {
	t.Parallel()
	data, err := edujson.MarshalSession(edubridge.Session{Key: "s1"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"turns": []`)
}

func TestMarshalSession_UnknownRole(t *testing.T) {
	t.Parallel()
	s := edubridge.Session{History: []edubridge.Turn{{Role: "system", Text: "x"}}}
	_, err := edujson.MarshalSession(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turn 0: unknown role")
}

func TestUnmarshalSession_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{`, "unmarshal envelope"},
		{"wrong version", `{"version":2}`, "unsupported envelope version: 2"},
		{"unknown role", `{"version":1,"turns":[{"role":"tool","text":"x"}]}`, "unknown role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := edujson.UnmarshalSession([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSave(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "transcript.json")

	require.NoError(t, edujson.Save(path, testSession()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := edujson.UnmarshalSession(data)
	require.NoError(t, err)
	assert.Len(t, got.History, 2)

	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
