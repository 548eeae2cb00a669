package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <user-id> <streams.json>",
	Short: "Dry-run a resolution against a stream list",
	Long: `Run the rule engine against a stream list without touching any
session, using the user's stored rules.

The file holds the stream descriptors, e.g.:

  [{"kind": "Audio", "index": 0, "language": "eng", "isDefault": true,
    "channels": 2, "codec": "aac"},
   {"kind": "Subtitle", "index": 2, "language": "eng", "isForced": true}]`,
	Args: cobra.ExactArgs(2),
	RunE: runResolveCmd,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("series", "", "Series ID for scope matching")
	resolveCmd.Flags().String("library", "", "Library ID for scope matching")
	resolveCmd.Flags().Int("audio-index", -1, "Current audio stream index (-1 for none)")
	resolveCmd.Flags().Int("subtitle-index", -1, "Current subtitle stream index (-1 for none)")
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read streams file: %w", err)
	}

	req := ResolveRequest{UserID: args[0]}
	if err := json.Unmarshal(data, &req.Streams); err != nil {
		return fmt.Errorf("parse streams file: %w", err)
	}

	req.SeriesID, _ = cmd.Flags().GetString("series")
	req.LibraryID, _ = cmd.Flags().GetString("library")
	if idx, _ := cmd.Flags().GetInt("audio-index"); idx >= 0 {
		req.CurrentAudioIndex = &idx
	}
	if idx, _ := cmd.Flags().GetInt("subtitle-index"); idx >= 0 {
		req.CurrentSubtitleIndex = &idx
	}

	client := NewClient(serverURL)
	resp, err := client.Resolve(req)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if !resp.Changed {
		fmt.Println("No track changes")
		return nil
	}

	fmt.Printf("Matched scope: %s\n", resp.Scope)
	if resp.AudioIndex != nil {
		fmt.Printf("Audio    -> stream #%d\n", *resp.AudioIndex)
	}
	if resp.SubtitleIndex != nil {
		if *resp.SubtitleIndex < 0 {
			fmt.Println("Subtitle -> off")
		} else {
			fmt.Printf("Subtitle -> stream #%d\n", *resp.SubtitleIndex)
		}
	}
	return nil
}
