package tracks

// StreamKind identifies the track type of a media stream.
type StreamKind string

const (
	KindAudio    StreamKind = "Audio"
	KindSubtitle StreamKind = "Subtitle"
)

// Stream describes one track of the currently playing item. The resolver
// consumes streams read-only; Index is the stable identifier used when
// issuing a track-switch command.
type Stream struct {
	Kind      StreamKind `json:"kind"`
	Index     int        `json:"index"`
	Language  string     `json:"language"`
	IsDefault bool       `json:"isDefault"`
	IsForced  bool       `json:"isForced"`
	Channels  int        `json:"channels,omitempty"` // audio only
	Codec     string     `json:"codec,omitempty"`    // audio only
}
