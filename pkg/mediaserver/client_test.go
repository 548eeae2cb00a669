package mediaserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/trackarr/pkg/tracks"
)

func TestClient_Sessions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Sessions", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Emby-Token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"Id": "sess-1",
				"UserId": "u1",
				"UserName": "alice",
				"NowPlayingItem": {
					"Id": "item-1",
					"Name": "Episode 1",
					"Type": "Episode",
					"SeriesId": "series-1",
					"ParentId": "lib-1",
					"MediaStreams": [
						{"Index": 0, "Type": "Video", "Codec": "h264"},
						{"Index": 1, "Type": "Audio", "Codec": "aac", "Language": "eng", "IsDefault": true, "Channels": 2},
						{"Index": 2, "Type": "Subtitle", "Language": "eng", "IsForced": true}
					]
				},
				"PlayState": {"AudioStreamIndex": 1, "PlayMethod": "DirectPlay"}
			},
			{"Id": "sess-2", "UserId": "u2", "PlayState": {}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	sessions, err := client.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	s := sessions[0]
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, "u1", s.UserID)
	require.NotNil(t, s.NowPlaying)
	assert.Equal(t, "series-1", s.NowPlaying.SeriesID)
	assert.Equal(t, "lib-1", s.NowPlaying.ParentID)
	require.NotNil(t, s.PlayState.AudioStreamIndex)
	assert.Equal(t, 1, *s.PlayState.AudioStreamIndex)
	assert.Nil(t, s.PlayState.SubtitleStreamIndex)
	assert.Equal(t, "DirectPlay", s.PlayState.PlayMethod)

	assert.Nil(t, sessions[1].NowPlaying)
}

func TestClient_SessionsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "wrong-key", nil)
	_, err := client.Sessions(context.Background())
	assert.ErrorContains(t, err, "401")
}

func TestNowPlayingItem_Streams(t *testing.T) {
	item := &NowPlayingItem{
		MediaStreams: []MediaStream{
			{Index: 0, Type: "Video", Codec: "h264"},
			{Index: 1, Type: "Audio", Codec: "dts", Language: "jpn", Channels: 6},
			{Index: 2, Type: "Subtitle", Language: "eng", IsDefault: true},
			{Index: 3, Type: "EmbeddedImage"},
		},
	}

	streams := item.Streams()
	require.Len(t, streams, 2)

	assert.Equal(t, tracks.Stream{
		Kind: tracks.KindAudio, Index: 1, Language: "jpn", Channels: 6, Codec: "dts",
	}, streams[0])
	assert.Equal(t, tracks.Stream{
		Kind: tracks.KindSubtitle, Index: 2, Language: "eng", IsDefault: true,
	}, streams[1])
}

func TestClient_SetAudioStreamIndex(t *testing.T) {
	var gotPath string
	var gotCmd struct {
		Name      string            `json:"Name"`
		Arguments map[string]string `json:"Arguments"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Emby-Token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCmd))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	err := client.SetAudioStreamIndex(context.Background(), "sess-1", 2)
	require.NoError(t, err)

	assert.Equal(t, "/Sessions/sess-1/Command", gotPath)
	assert.Equal(t, "SetAudioStreamIndex", gotCmd.Name)
	assert.Equal(t, "2", gotCmd.Arguments["Index"])
}

func TestClient_SetSubtitleStreamIndexDisable(t *testing.T) {
	var gotCmd struct {
		Name      string            `json:"Name"`
		Arguments map[string]string `json:"Arguments"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCmd))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	err := client.SetSubtitleStreamIndex(context.Background(), "sess-1", -1)
	require.NoError(t, err)

	assert.Equal(t, "SetSubtitleStreamIndex", gotCmd.Name)
	assert.Equal(t, "-1", gotCmd.Arguments["Index"])
}

func TestClient_SendCommandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such session", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	err := client.SetAudioStreamIndex(context.Background(), "gone", 1)
	assert.ErrorContains(t, err, "SetAudioStreamIndex failed")
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/System/Info/Public", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	assert.NoError(t, client.Ping(context.Background()))
}
