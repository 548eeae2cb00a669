// Package tracks implements the track selection rule engine: per-user
// preference rules scoped at series, library, and global level, and the
// resolver that picks audio and subtitle streams for a playback session.
package tracks

// Scope is the precedence tier of a rule. Series is the most specific,
// Global the least.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeLibrary
	ScopeSeries
)

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeLibrary:
		return "library"
	case ScopeSeries:
		return "series"
	default:
		return "unknown"
	}
}

// SubtitleMode controls how the resolver picks a subtitle stream.
type SubtitleMode int

const (
	SubsNone SubtitleMode = iota
	SubsDefault
	SubsPreferForced
	SubsAlways
	SubsOnlyIfAudioNotPreferred
)

func (m SubtitleMode) String() string {
	switch m {
	case SubsNone:
		return "none"
	case SubsDefault:
		return "default"
	case SubsPreferForced:
		return "prefer-forced"
	case SubsAlways:
		return "always"
	case SubsOnlyIfAudioNotPreferred:
		return "only-if-audio-not-preferred"
	default:
		return "unknown"
	}
}

// Rule is one track preference entry. Audio and Subs are ordered lists of
// language tokens; earlier entries win.
type Rule struct {
	Scope         Scope        `json:"scope"`
	TargetID      *string      `json:"targetId"`
	Audio         []string     `json:"audio"`
	Subs          []string     `json:"subs"`
	SubsMode      SubtitleMode `json:"subsMode"`
	DontTranscode bool         `json:"dontTranscode"`
	Enabled       bool         `json:"enabled"`
}

// NewRule returns a rule with default preferences: any audio, no
// subtitles, default subtitle mode, enabled.
func NewRule(scope Scope) Rule {
	return Rule{
		Scope:    scope,
		Audio:    []string{"any"},
		Subs:     []string{"none"},
		SubsMode: SubsDefault,
		Enabled:  true,
	}
}

// AppliesTo reports whether the rule governs the given series/library
// pair. A non-global rule without a target can never match.
func (r *Rule) AppliesTo(seriesID, libraryID string) bool {
	switch r.Scope {
	case ScopeGlobal:
		return true
	case ScopeSeries:
		return r.TargetID != nil && *r.TargetID != "" && seriesID != "" && *r.TargetID == seriesID
	case ScopeLibrary:
		return r.TargetID != nil && *r.TargetID != "" && libraryID != "" && *r.TargetID == libraryID
	default:
		return false
	}
}

// SchemaVersion is the current rule set schema version. Readers upgrade
// older sets in place and never fail on a version mismatch.
const SchemaVersion = 1

// RuleSet is the full rule collection for one user. Rules are replaced
// wholesale on every save, never patched. List order does not affect
// resolution; selection uses scope precedence.
type RuleSet struct {
	Version int    `json:"version"`
	UserID  string `json:"userId"`
	Rules   []Rule `json:"rules"`
}

// NewRuleSet returns the empty rule set created on first access for a user.
func NewRuleSet(userID string) *RuleSet {
	return &RuleSet{
		Version: SchemaVersion,
		UserID:  userID,
		Rules:   []Rule{},
	}
}

// Upgrade brings an older rule set up to the current schema version.
// It reports whether anything changed.
func (s *RuleSet) Upgrade() bool {
	if s.Version >= SchemaVersion {
		return false
	}
	s.Version = SchemaVersion
	return true
}

// HasEnabled reports whether at least one rule is enabled.
func (s *RuleSet) HasEnabled() bool {
	for i := range s.Rules {
		if s.Rules[i].Enabled {
			return true
		}
	}
	return false
}
