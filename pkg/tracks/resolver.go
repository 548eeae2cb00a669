package tracks

import (
	"github.com/vmunix/trackarr/pkg/language"
	"github.com/vmunix/trackarr/pkg/tracks/scoring"
)

// Resolve computes the desired audio and subtitle stream indices for a
// playback session. It is pure and stateless: safe for concurrent use,
// never retains its inputs, and fails closed to "no change" on any
// uncertain input rather than risking a wrong track switch.
func Resolve(set *RuleSet, ctx Context) Result {
	if set == nil || len(ctx.Streams) == 0 {
		return Result{}
	}

	rule := selectRule(set, ctx)
	if rule == nil {
		return Result{}
	}

	audioPrefs := language.NormalizeMany(rule.Audio)
	if len(audioPrefs) == 0 {
		audioPrefs = []string{language.Any}
	}
	subsPrefs := language.NormalizeMany(rule.Subs)
	if len(subsPrefs) == 0 {
		subsPrefs = []string{language.None}
	}

	audioCandidates := ctx.audioStreams()
	chosenAudio := selectAudio(audioPrefs, audioCandidates)

	var audioIndex *int
	if chosenAudio != nil && (ctx.CurrentAudioIndex == nil || *ctx.CurrentAudioIndex != chosenAudio.Index) {
		idx := chosenAudio.Index
		audioIndex = &idx
	}

	// The subtitle state machine compares against the language of the
	// concrete audio stream that was picked, not the preference list.
	selectedAudioLang := ""
	if chosenAudio != nil {
		selectedAudioLang = language.Normalize(chosenAudio.Language)
	}

	choice := selectSubtitle(rule.SubsMode, subsPrefs, audioPrefs, selectedAudioLang, ctx.subtitleStreams())
	subtitleIndex := choice.apply(ctx.CurrentSubtitleIndex)

	if audioIndex == nil && subtitleIndex == nil {
		return Result{}
	}
	return Result{
		Rule:          rule,
		Scope:         rule.Scope,
		AudioIndex:    audioIndex,
		SubtitleIndex: subtitleIndex,
	}
}

// selectRule scans enabled rules in fixed precedence: series match,
// then library match, then any global rule. Exactly one rule (or none)
// governs the whole decision; tiers are never blended.
func selectRule(set *RuleSet, ctx Context) *Rule {
	for i := range set.Rules {
		r := &set.Rules[i]
		if r.Enabled && r.Scope == ScopeSeries && r.AppliesTo(ctx.SeriesID, ctx.LibraryID) {
			return r
		}
	}
	for i := range set.Rules {
		r := &set.Rules[i]
		if r.Enabled && r.Scope == ScopeLibrary && r.AppliesTo(ctx.SeriesID, ctx.LibraryID) {
			return r
		}
	}
	for i := range set.Rules {
		r := &set.Rules[i]
		if r.Enabled && r.Scope == ScopeGlobal {
			return r
		}
	}
	return nil
}

// selectAudio walks the normalized preference list in order. The first
// preference that matches any candidate wins; ties within a preference
// are broken by score. The keyword "any" matches every candidate.
func selectAudio(prefs []string, candidates []Stream) *Stream {
	if len(candidates) == 0 {
		return nil
	}
	for _, pref := range prefs {
		var best *Stream
		bestScore := 0
		for i := range candidates {
			s := &candidates[i]
			if pref != language.Any && language.Normalize(s.Language) != pref {
				continue
			}
			score := scoring.Audio(s.IsDefault, s.Channels, s.Codec)
			if best == nil || score > bestScore {
				best, bestScore = s, score
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}
