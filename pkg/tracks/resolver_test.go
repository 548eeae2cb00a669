package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// animeStreams is the canonical dual-audio fixture: English stereo AAC
// flagged default, Japanese 5.1 DTS, a forced English subtitle, and a
// full English subtitle flagged default.
func animeStreams() []Stream {
	return []Stream{
		{Kind: KindAudio, Index: 0, Language: "eng", IsDefault: true, Channels: 2, Codec: "aac"},
		{Kind: KindAudio, Index: 1, Language: "jpn", Channels: 6, Codec: "dts"},
		{Kind: KindSubtitle, Index: 2, Language: "eng", IsForced: true},
		{Kind: KindSubtitle, Index: 3, Language: "eng", IsDefault: true},
	}
}

func singleRule(r Rule) *RuleSet {
	return &RuleSet{Version: SchemaVersion, UserID: "u1", Rules: []Rule{r}}
}

func TestResolve_NilSet(t *testing.T) {
	res := Resolve(nil, Context{Streams: animeStreams()})
	assert.False(t, res.HasChange())
	assert.Nil(t, res.Rule)
}

func TestResolve_EmptyStreams(t *testing.T) {
	set := singleRule(Rule{Scope: ScopeGlobal, Audio: []string{"jpn"}, Enabled: true})
	res := Resolve(set, Context{UserID: "u1"})
	assert.False(t, res.HasChange())
}

func TestResolve_NoEnabledRules(t *testing.T) {
	set := singleRule(Rule{Scope: ScopeGlobal, Audio: []string{"jpn"}, Enabled: false})
	res := Resolve(set, Context{Streams: animeStreams()})
	assert.False(t, res.HasChange())
	assert.Nil(t, res.Rule)
}

// Japanese-first audio with forced English subtitles: the classic anime
// rule. Audio moves off the default English track, subtitles land on the
// forced stream.
func TestResolve_JapanesePreferForced(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"jpn", "eng"},
		Subs:     []string{"eng"},
		SubsMode: SubsPreferForced,
		Enabled:  true,
	})
	res := Resolve(set, Context{
		Streams:           animeStreams(),
		CurrentAudioIndex: ptr(0),
	})

	require.True(t, res.HasChange())
	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 1, *res.AudioIndex)
	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, 2, *res.SubtitleIndex)
	assert.Equal(t, ScopeGlobal, res.Scope)
}

// Under ["any"] every audio stream competes on score alone. The default
// stereo AAC track (1026) beats the non-default 5.1 DTS track (69).
func TestResolve_AnyAudioPicksHighestScore(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"any"},
		Subs:     []string{"none"},
		SubsMode: SubsDefault,
		Enabled:  true,
	})
	res := Resolve(set, Context{Streams: animeStreams()})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 0, *res.AudioIndex)
	assert.Nil(t, res.SubtitleIndex)
}

// Resolving twice is a fixed point: feeding the chosen indices back as
// the current state yields no change at all.
func TestResolve_Idempotent(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"jpn", "eng"},
		Subs:     []string{"eng"},
		SubsMode: SubsPreferForced,
		Enabled:  true,
	})
	ctx := Context{Streams: animeStreams(), CurrentAudioIndex: ptr(0)}

	first := Resolve(set, ctx)
	require.True(t, first.HasChange())

	ctx.CurrentAudioIndex = first.AudioIndex
	ctx.CurrentSubtitleIndex = first.SubtitleIndex
	second := Resolve(set, ctx)
	assert.False(t, second.HasChange())
	assert.Nil(t, second.Rule)
}

func TestResolve_ScopePrecedence(t *testing.T) {
	streams := []Stream{
		{Kind: KindAudio, Index: 0, Language: "eng"},
		{Kind: KindAudio, Index: 1, Language: "jpn"},
		{Kind: KindAudio, Index: 2, Language: "fra"},
	}
	// Listed least specific first to prove list order is irrelevant.
	set := &RuleSet{Version: SchemaVersion, UserID: "u1", Rules: []Rule{
		{Scope: ScopeGlobal, Audio: []string{"eng"}, Subs: []string{"none"}, Enabled: true},
		{Scope: ScopeLibrary, TargetID: ptr("lib-1"), Audio: []string{"fra"}, Subs: []string{"none"}, Enabled: true},
		{Scope: ScopeSeries, TargetID: ptr("series-1"), Audio: []string{"jpn"}, Subs: []string{"none"}, Enabled: true},
	}}

	tests := []struct {
		name      string
		seriesID  string
		libraryID string
		wantIndex int
		wantScope Scope
	}{
		{"series beats library and global", "series-1", "lib-1", 1, ScopeSeries},
		{"library beats global", "series-2", "lib-1", 2, ScopeLibrary},
		{"global is the floor", "series-2", "lib-2", 0, ScopeGlobal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(set, Context{
				SeriesID:  tt.seriesID,
				LibraryID: tt.libraryID,
				Streams:   streams,
			})
			require.NotNil(t, res.AudioIndex)
			assert.Equal(t, tt.wantIndex, *res.AudioIndex)
			assert.Equal(t, tt.wantScope, res.Scope)
		})
	}
}

func TestResolve_DisabledRuleSkipped(t *testing.T) {
	set := &RuleSet{Version: SchemaVersion, UserID: "u1", Rules: []Rule{
		{Scope: ScopeSeries, TargetID: ptr("series-1"), Audio: []string{"jpn"}, Subs: []string{"none"}, Enabled: false},
		{Scope: ScopeGlobal, Audio: []string{"eng"}, Subs: []string{"none"}, Enabled: true},
	}}
	res := Resolve(set, Context{SeriesID: "series-1", Streams: animeStreams(), CurrentAudioIndex: ptr(1)})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 0, *res.AudioIndex)
	assert.Equal(t, ScopeGlobal, res.Scope)
}

// A scoped rule missing its target can never match; resolution falls
// through to the next tier instead of failing.
func TestResolve_TargetlessRuleIsInert(t *testing.T) {
	set := &RuleSet{Version: SchemaVersion, UserID: "u1", Rules: []Rule{
		{Scope: ScopeSeries, Audio: []string{"jpn"}, Subs: []string{"none"}, Enabled: true},
		{Scope: ScopeGlobal, Audio: []string{"eng"}, Subs: []string{"none"}, Enabled: true},
	}}
	res := Resolve(set, Context{SeriesID: "series-1", Streams: animeStreams(), CurrentAudioIndex: ptr(1)})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 0, *res.AudioIndex)
	assert.Equal(t, ScopeGlobal, res.Scope)
}

func TestResolve_FirstRuleInTierWins(t *testing.T) {
	set := &RuleSet{Version: SchemaVersion, UserID: "u1", Rules: []Rule{
		{Scope: ScopeGlobal, Audio: []string{"jpn"}, Subs: []string{"none"}, Enabled: true},
		{Scope: ScopeGlobal, Audio: []string{"eng"}, Subs: []string{"none"}, Enabled: true},
	}}
	res := Resolve(set, Context{Streams: animeStreams(), CurrentAudioIndex: ptr(0)})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 1, *res.AudioIndex)
}

// Raw rule tokens are normalized before matching, so "Japanese" finds a
// stream tagged "jpn" and "fre" finds one tagged "fra".
func TestResolve_NormalizesPreferences(t *testing.T) {
	set := singleRule(Rule{
		Scope:   ScopeGlobal,
		Audio:   []string{"Japanese"},
		Subs:    []string{"none"},
		Enabled: true,
	})
	res := Resolve(set, Context{Streams: animeStreams(), CurrentAudioIndex: ptr(0)})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 1, *res.AudioIndex)
}

func TestResolve_NoPreferenceMatches(t *testing.T) {
	set := singleRule(Rule{
		Scope:   ScopeGlobal,
		Audio:   []string{"kor"},
		Subs:    []string{"none"},
		Enabled: true,
	})
	res := Resolve(set, Context{Streams: animeStreams(), CurrentAudioIndex: ptr(0)})
	assert.False(t, res.HasChange())
}

// Empty preference lists degrade to the defaults: any audio, no subs.
func TestResolve_EmptyPreferencesUseDefaults(t *testing.T) {
	set := singleRule(Rule{Scope: ScopeGlobal, Enabled: true})
	res := Resolve(set, Context{
		Streams:              animeStreams(),
		CurrentAudioIndex:    ptr(1),
		CurrentSubtitleIndex: ptr(3),
	})

	require.NotNil(t, res.AudioIndex)
	assert.Equal(t, 0, *res.AudioIndex)
	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, DisableSubtitles, *res.SubtitleIndex)
}

func TestResolve_SubsNoneDisablesActiveSubtitles(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"any"},
		Subs:     []string{"eng"},
		SubsMode: SubsNone,
		Enabled:  true,
	})
	res := Resolve(set, Context{
		Streams:              animeStreams(),
		CurrentAudioIndex:    ptr(0),
		CurrentSubtitleIndex: ptr(3),
	})

	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, DisableSubtitles, *res.SubtitleIndex)
	assert.Nil(t, res.AudioIndex)
}

func TestResolve_SubsNoneWithSubtitlesAlreadyOff(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"any"},
		Subs:     []string{"eng"},
		SubsMode: SubsNone,
		Enabled:  true,
	})
	res := Resolve(set, Context{
		Streams:           animeStreams(),
		CurrentAudioIndex: ptr(0),
	})
	assert.False(t, res.HasChange())
}

func TestResolve_OnlyIfAudioNotPreferred(t *testing.T) {
	t.Run("audio preferred disables subtitles", func(t *testing.T) {
		set := singleRule(Rule{
			Scope:    ScopeGlobal,
			Audio:    []string{"eng"},
			Subs:     []string{"eng"},
			SubsMode: SubsOnlyIfAudioNotPreferred,
			Enabled:  true,
		})
		res := Resolve(set, Context{
			Streams:              animeStreams(),
			CurrentAudioIndex:    ptr(0),
			CurrentSubtitleIndex: ptr(3),
		})

		require.NotNil(t, res.SubtitleIndex)
		assert.Equal(t, DisableSubtitles, *res.SubtitleIndex)
	})

	t.Run("no audio matched enables subtitles", func(t *testing.T) {
		// Only Japanese audio is available and only English is wanted,
		// so no audio preference matched and the viewer gets subtitles.
		streams := []Stream{
			{Kind: KindAudio, Index: 0, Language: "jpn", Channels: 6, Codec: "dts"},
			{Kind: KindSubtitle, Index: 1, Language: "eng", IsDefault: true},
		}
		set := singleRule(Rule{
			Scope:    ScopeGlobal,
			Audio:    []string{"eng"},
			Subs:     []string{"eng"},
			SubsMode: SubsOnlyIfAudioNotPreferred,
			Enabled:  true,
		})
		res := Resolve(set, Context{Streams: streams, CurrentAudioIndex: ptr(0)})

		require.NotNil(t, res.SubtitleIndex)
		assert.Equal(t, 1, *res.SubtitleIndex)
	})
}

// A stream matched through the "any" catch-all is not a preferred
// language, so subtitles stay on.
func TestResolve_OnlyIfAudioNotPreferred_FallbackLanguage(t *testing.T) {
	streams := []Stream{
		{Kind: KindAudio, Index: 0, Language: "jpn", Channels: 6, Codec: "dts"},
		{Kind: KindSubtitle, Index: 1, Language: "eng", IsDefault: true},
	}
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"eng", "any"},
		Subs:     []string{"eng"},
		SubsMode: SubsOnlyIfAudioNotPreferred,
		Enabled:  true,
	})
	res := Resolve(set, Context{Streams: streams, CurrentAudioIndex: ptr(0)})

	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, 1, *res.SubtitleIndex)
}

// Forced subtitles in another language still beat unforced ones in the
// preferred language under prefer-forced.
func TestResolve_PreferForcedCrossLanguage(t *testing.T) {
	streams := []Stream{
		{Kind: KindAudio, Index: 0, Language: "eng", IsDefault: true, Channels: 2, Codec: "aac"},
		{Kind: KindSubtitle, Index: 1, Language: "jpn", IsForced: true},
		{Kind: KindSubtitle, Index: 2, Language: "eng", IsDefault: true},
	}
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"eng"},
		Subs:     []string{"eng"},
		SubsMode: SubsPreferForced,
		Enabled:  true,
	})
	res := Resolve(set, Context{Streams: streams, CurrentAudioIndex: ptr(0)})

	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, 1, *res.SubtitleIndex)
}

func TestResolve_AlwaysMode(t *testing.T) {
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"any"},
		Subs:     []string{"kor"},
		SubsMode: SubsAlways,
		Enabled:  true,
	})
	// No Korean subtitles exist; always-mode still picks the highest
	// scored stream rather than giving up.
	res := Resolve(set, Context{Streams: animeStreams(), CurrentAudioIndex: ptr(0)})

	require.NotNil(t, res.SubtitleIndex)
	assert.Equal(t, 3, *res.SubtitleIndex)
}

func TestResolve_NoSubtitleStreams(t *testing.T) {
	streams := []Stream{
		{Kind: KindAudio, Index: 0, Language: "eng", IsDefault: true},
	}
	set := singleRule(Rule{
		Scope:    ScopeGlobal,
		Audio:    []string{"eng"},
		Subs:     []string{"eng"},
		SubsMode: SubsAlways,
		Enabled:  true,
	})
	res := Resolve(set, Context{Streams: streams, CurrentAudioIndex: ptr(0), CurrentSubtitleIndex: ptr(5)})
	assert.False(t, res.HasChange())
}
