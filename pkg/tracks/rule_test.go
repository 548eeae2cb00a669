package tracks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_AppliesTo(t *testing.T) {
	tests := []struct {
		name      string
		rule      Rule
		seriesID  string
		libraryID string
		want      bool
	}{
		{"global always applies", Rule{Scope: ScopeGlobal}, "s1", "l1", true},
		{"global applies without ids", Rule{Scope: ScopeGlobal}, "", "", true},
		{"series match", Rule{Scope: ScopeSeries, TargetID: ptr("s1")}, "s1", "l1", true},
		{"series mismatch", Rule{Scope: ScopeSeries, TargetID: ptr("s1")}, "s2", "l1", false},
		{"series without target is inert", Rule{Scope: ScopeSeries}, "s1", "l1", false},
		{"series with empty target is inert", Rule{Scope: ScopeSeries, TargetID: ptr("")}, "s1", "l1", false},
		{"series rule never matches empty series id", Rule{Scope: ScopeSeries, TargetID: ptr("s1")}, "", "l1", false},
		{"library match", Rule{Scope: ScopeLibrary, TargetID: ptr("l1")}, "s1", "l1", true},
		{"library mismatch", Rule{Scope: ScopeLibrary, TargetID: ptr("l2")}, "s1", "l1", false},
		{"library without target is inert", Rule{Scope: ScopeLibrary}, "s1", "l1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.AppliesTo(tt.seriesID, tt.libraryID))
		})
	}
}

func TestNewRule_Defaults(t *testing.T) {
	r := NewRule(ScopeGlobal)
	assert.Equal(t, []string{"any"}, r.Audio)
	assert.Equal(t, []string{"none"}, r.Subs)
	assert.Equal(t, SubsDefault, r.SubsMode)
	assert.True(t, r.Enabled)
	assert.False(t, r.DontTranscode)
}

func TestRule_WireFormat(t *testing.T) {
	// Scope and mode travel as integers; field names are fixed.
	in := `{"scope":2,"targetId":"series-9","audio":["jpn","eng"],"subs":["eng"],"subsMode":2,"dontTranscode":true,"enabled":true}`

	var r Rule
	require.NoError(t, json.Unmarshal([]byte(in), &r))
	assert.Equal(t, ScopeSeries, r.Scope)
	assert.Equal(t, "series-9", *r.TargetID)
	assert.Equal(t, SubsPreferForced, r.SubsMode)
	assert.True(t, r.DontTranscode)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestRuleSet_Upgrade(t *testing.T) {
	s := &RuleSet{Version: 0, UserID: "u1"}
	assert.True(t, s.Upgrade())
	assert.Equal(t, SchemaVersion, s.Version)
	assert.False(t, s.Upgrade())
}

func TestRuleSet_HasEnabled(t *testing.T) {
	s := NewRuleSet("u1")
	assert.False(t, s.HasEnabled())

	s.Rules = append(s.Rules, Rule{Scope: ScopeGlobal, Enabled: false})
	assert.False(t, s.HasEnabled())

	s.Rules = append(s.Rules, Rule{Scope: ScopeGlobal, Enabled: true})
	assert.True(t, s.HasEnabled())
}

func ptr[T any](v T) *T { return &v }
