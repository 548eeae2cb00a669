// Package mediaserver implements a client for the Jellyfin/Emby session
// API: listing active sessions and sending track-switch commands.
package mediaserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/trackarr/pkg/tracks"
)

// Client talks to a single media server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new media server client.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "mediaserver")
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: clientLog,
	}
}

// URL returns the server base URL.
func (c *Client) URL() string {
	return c.baseURL
}

// Session is one active playback session.
type Session struct {
	ID         string          `json:"Id"`
	UserID     string          `json:"UserId"`
	UserName   string          `json:"UserName"`
	NowPlaying *NowPlayingItem `json:"NowPlayingItem"`
	PlayState  PlayState       `json:"PlayState"`
}

// NowPlayingItem is the item a session is currently playing.
type NowPlayingItem struct {
	ID           string        `json:"Id"`
	Name         string        `json:"Name"`
	Type         string        `json:"Type"` // Movie, Episode, ...
	SeriesID     string        `json:"SeriesId"`
	ParentID     string        `json:"ParentId"`
	MediaStreams []MediaStream `json:"MediaStreams"`
}

// PlayState carries the session's active track indices and routing.
type PlayState struct {
	AudioStreamIndex    *int   `json:"AudioStreamIndex"`
	SubtitleStreamIndex *int   `json:"SubtitleStreamIndex"`
	PlayMethod          string `json:"PlayMethod"` // DirectPlay, DirectStream, Transcode
}

// MediaStream is one track of the playing item as the server reports it.
type MediaStream struct {
	Index     int    `json:"Index"`
	Type      string `json:"Type"` // Video, Audio, Subtitle
	Codec     string `json:"Codec"`
	Language  string `json:"Language"`
	IsDefault bool   `json:"IsDefault"`
	IsForced  bool   `json:"IsForced"`
	Channels  int    `json:"Channels"`
}

// Streams converts the item's stream list to resolver descriptors.
// Video and other non-track streams are dropped.
func (i *NowPlayingItem) Streams() []tracks.Stream {
	var out []tracks.Stream
	for _, ms := range i.MediaStreams {
		var kind tracks.StreamKind
		switch ms.Type {
		case "Audio":
			kind = tracks.KindAudio
		case "Subtitle":
			kind = tracks.KindSubtitle
		default:
			continue
		}
		out = append(out, tracks.Stream{
			Kind:      kind,
			Index:     ms.Index,
			Language:  ms.Language,
			IsDefault: ms.IsDefault,
			IsForced:  ms.IsForced,
			Channels:  ms.Channels,
			Codec:     ms.Codec,
		})
	}
	return out
}

// Ping checks connectivity to the server.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/System/Info/Public", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping failed: %d", resp.StatusCode)
	}
	return nil
}

// Sessions returns the server's active sessions.
func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/Sessions", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Emby-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sessions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sessions request failed: %d: %s", resp.StatusCode, string(body))
	}

	var sessions []Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	if c.log != nil {
		c.log.Debug("fetched sessions", "count", len(sessions))
	}
	return sessions, nil
}

// generalCommand is the session command envelope.
type generalCommand struct {
	Name      string            `json:"Name"`
	Arguments map[string]string `json:"Arguments"`
}

// SetAudioStreamIndex tells a session to switch its audio track.
func (c *Client) SetAudioStreamIndex(ctx context.Context, sessionID string, index int) error {
	return c.sendCommand(ctx, sessionID, "SetAudioStreamIndex", index)
}

// SetSubtitleStreamIndex tells a session to switch its subtitle track.
// A negative index turns subtitles off.
func (c *Client) SetSubtitleStreamIndex(ctx context.Context, sessionID string, index int) error {
	return c.sendCommand(ctx, sessionID, "SetSubtitleStreamIndex", index)
}

func (c *Client) sendCommand(ctx context.Context, sessionID, name string, index int) error {
	cmd := generalCommand{
		Name:      name,
		Arguments: map[string]string{"Index": strconv.Itoa(index)},
	}
	body, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}

	u := fmt.Sprintf("%s/Sessions/%s/Command", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed: %d: %s", name, resp.StatusCode, string(respBody))
	}

	if c.log != nil {
		c.log.Debug("sent session command", "session_id", sessionID, "command", name, "index", index)
	}
	return nil
}
