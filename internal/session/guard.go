package session

import "github.com/vmunix/trackarr/pkg/mediaserver"

// transcodeGuard is a conservative transcode-risk check: when the
// session is already transcoding, a track switch can only make the
// routing worse, so suppress it.
type transcodeGuard struct{}

// NewTranscodeGuard returns the default guard implementation.
func NewTranscodeGuard() Guard {
	return transcodeGuard{}
}

func (transcodeGuard) ShouldSkip(s mediaserver.Session) bool {
	return s.PlayState.PlayMethod == "Transcode"
}
