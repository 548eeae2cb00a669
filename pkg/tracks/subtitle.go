package tracks

import (
	"strings"

	"github.com/vmunix/trackarr/pkg/language"
	"github.com/vmunix/trackarr/pkg/tracks/scoring"
)

// subtitleChoice is the outcome of the subtitle state machine: leave the
// current track alone, force subtitles off, or switch to a stream.
type subtitleChoice struct {
	disable bool
	stream  *Stream
}

func subNoChange() subtitleChoice     { return subtitleChoice{} }
func subDisable() subtitleChoice      { return subtitleChoice{disable: true} }
func subUse(s *Stream) subtitleChoice { return subtitleChoice{stream: s} }

// apply diffs the choice against the current subtitle index. Disabling
// is only reported when subtitles are actually on; switching only when
// the target differs from the current index.
func (c subtitleChoice) apply(current *int) *int {
	if c.disable {
		if current == nil || *current < 0 {
			return nil
		}
		idx := DisableSubtitles
		return &idx
	}
	if c.stream == nil {
		return nil
	}
	if current != nil && *current == c.stream.Index {
		return nil
	}
	idx := c.stream.Index
	return &idx
}

// selectSubtitle dispatches on the subtitle mode. prefs and audioPrefs
// are normalized; audioLang is the normalized language of the audio
// stream actually chosen, or "" when none was.
func selectSubtitle(mode SubtitleMode, prefs, audioPrefs []string, audioLang string, candidates []Stream) subtitleChoice {
	// None mode and a bare ["none"] preference force subtitles off no
	// matter what streams exist.
	if mode == SubsNone || (len(prefs) == 1 && prefs[0] == language.None) {
		return subDisable()
	}
	// Nothing to choose from: leave the current index alone rather than
	// force-clearing it.
	if len(candidates) == 0 {
		return subNoChange()
	}

	if mode == SubsOnlyIfAudioNotPreferred {
		if audioLang != "" && audioIsPreferred(audioLang, audioPrefs) {
			return subDisable()
		}
		mode = SubsDefault
	}

	switch mode {
	case SubsPreferForced:
		return selectPreferForced(prefs, candidates)
	case SubsAlways:
		return selectAlways(prefs, candidates)
	default:
		return selectDefault(prefs, candidates)
	}
}

// audioIsPreferred reports whether the selected audio language matches
// any concrete (non-"any") audio preference.
func audioIsPreferred(audioLang string, audioPrefs []string) bool {
	for _, pref := range audioPrefs {
		if pref == language.Any {
			continue
		}
		if strings.EqualFold(pref, audioLang) {
			return true
		}
	}
	return false
}

// selectPreferForced looks for a forced stream in preference order, then
// any forced stream at all, then falls back to default-mode behavior.
func selectPreferForced(prefs []string, candidates []Stream) subtitleChoice {
	if s := searchByPreference(prefs, candidates, func(s *Stream) bool { return s.IsForced }); s != nil {
		return subUse(s)
	}
	for i := range candidates {
		if candidates[i].IsForced {
			return subUse(&candidates[i])
		}
	}
	return selectDefault(prefs, candidates)
}

// selectAlways picks a stream unconditionally: by preference order when
// a concrete preference exists, otherwise the highest-scored stream
// overall. The unrestricted fallback can land on a language that was
// never requested.
func selectAlways(prefs []string, candidates []Stream) subtitleChoice {
	if firstConcrete(prefs) == "" {
		return subUse(highestScored(candidates))
	}
	if s := searchByPreference(prefs, candidates, nil); s != nil {
		return subUse(s)
	}
	return subUse(highestScored(candidates))
}

// selectDefault prefers flagged-default streams: preference order within
// defaults first, then any default stream, then the full candidate list
// by preference order.
func selectDefault(prefs []string, candidates []Stream) subtitleChoice {
	if s := searchByPreference(prefs, candidates, func(s *Stream) bool { return s.IsDefault }); s != nil {
		return subUse(s)
	}
	for i := range candidates {
		if candidates[i].IsDefault {
			return subUse(&candidates[i])
		}
	}
	if s := searchByPreference(prefs, candidates, nil); s != nil {
		return subUse(s)
	}
	return subNoChange()
}

// searchByPreference walks preferences in order over candidates passing
// the filter (nil filter admits all). "any" matches every remaining
// candidate, "none" is skipped as a language value. The first preference
// yielding a match wins; ties break by score.
func searchByPreference(prefs []string, candidates []Stream, filter func(*Stream) bool) *Stream {
	for _, pref := range prefs {
		if pref == language.None {
			continue
		}
		var best *Stream
		bestScore := 0
		for i := range candidates {
			s := &candidates[i]
			if filter != nil && !filter(s) {
				continue
			}
			if pref != language.Any && language.Normalize(s.Language) != pref {
				continue
			}
			score := scoring.Subtitle(s.IsDefault, s.IsForced)
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

func highestScored(candidates []Stream) *Stream {
	var best *Stream
	bestScore := 0
	for i := range candidates {
		s := &candidates[i]
		score := scoring.Subtitle(s.IsDefault, s.IsForced)
		if best == nil || score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

func firstConcrete(prefs []string) string {
	for _, p := range prefs {
		if p != language.None {
			return p
		}
	}
	return ""
}
