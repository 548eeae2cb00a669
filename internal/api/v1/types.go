package v1

import "github.com/vmunix/trackarr/pkg/tracks"

type usersResponse struct {
	Users []string `json:"users"`
}

type putRulesResponse struct {
	*tracks.RuleSet
	Warnings []string `json:"warnings,omitempty"`
}

type resolveRequest struct {
	UserID               string          `json:"userId"`
	SeriesID             string          `json:"seriesId,omitempty"`
	LibraryID            string          `json:"libraryId,omitempty"`
	Streams              []tracks.Stream `json:"streams"`
	CurrentAudioIndex    *int            `json:"currentAudioIndex,omitempty"`
	CurrentSubtitleIndex *int            `json:"currentSubtitleIndex,omitempty"`
}

type resolveResponse struct {
	Changed       bool   `json:"changed"`
	Scope         string `json:"scope,omitempty"`
	AudioIndex    *int   `json:"audioIndex,omitempty"`
	SubtitleIndex *int   `json:"subtitleIndex,omitempty"`
}

type statusResponse struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
