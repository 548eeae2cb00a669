// Package scoring provides the shared scoring constants and functions
// used to break ties between candidate streams.
package scoring

import "strings"

// Audio stream score weights. A flagged-default stream outranks any
// channel or codec advantage.
const (
	BonusDefault  = 1000
	ChannelWeight = 10
)

// Subtitle stream score weights.
const (
	SubtitleBonusDefault = 10
	SubtitleBonusForced  = 5
)

// codecOrder is the descending audio codec preference. Earlier entries
// rank higher.
var codecOrder = []string{
	"eac3", "truehd", "dts", "dtshd", "ac3", "aac",
	"flac", "opus", "vorbis", "pcm", "mp3",
}

// CodecRank returns the rank of an audio codec in the preference order.
// Lower is better; unknown codecs rank as len of the order list, below
// every listed codec.
func CodecRank(codec string) int {
	c := strings.ToLower(strings.TrimSpace(codec))
	for i, known := range codecOrder {
		if c == known {
			return i
		}
	}
	return len(codecOrder)
}

// Audio scores an audio stream: default bonus, channel count, and a
// codec term derived from the rank. Higher wins. Missing channel count
// contributes zero; unknown codecs contribute zero.
func Audio(isDefault bool, channels int, codec string) int {
	score := 0
	if isDefault {
		score += BonusDefault
	}
	score += channels * ChannelWeight
	score += len(codecOrder) - CodecRank(codec)
	return score
}

// Subtitle scores a subtitle stream by its default and forced flags.
// Higher wins.
func Subtitle(isDefault, isForced bool) int {
	score := 0
	if isDefault {
		score += SubtitleBonusDefault
	}
	if isForced {
		score += SubtitleBonusForced
	}
	return score
}
