package tracks

// DisableSubtitles is the sentinel subtitle index meaning "turn
// subtitles off".
const DisableSubtitles = -1

// Context is the immutable input to a resolution: who is watching what,
// with which streams, and which tracks are currently active. A nil
// current index means no track of that kind is active.
type Context struct {
	UserID               string
	SeriesID             string
	LibraryID            string
	Streams              []Stream
	CurrentAudioIndex    *int
	CurrentSubtitleIndex *int
}

func (c *Context) audioStreams() []Stream {
	var out []Stream
	for _, s := range c.Streams {
		if s.Kind == KindAudio {
			out = append(out, s)
		}
	}
	return out
}

func (c *Context) subtitleStreams() []Stream {
	var out []Stream
	for _, s := range c.Streams {
		if s.Kind == KindSubtitle {
			out = append(out, s)
		}
	}
	return out
}

// Result is the outcome of a resolution. A nil index means "leave that
// track as is"; SubtitleIndex of DisableSubtitles means "turn subtitles
// off". When nothing changed, Rule is nil and both indices are nil.
type Result struct {
	Rule          *Rule
	Scope         Scope
	AudioIndex    *int
	SubtitleIndex *int
}

// HasChange reports whether the resolution produced any track change.
func (r Result) HasChange() bool {
	return r.AudioIndex != nil || r.SubtitleIndex != nil
}
