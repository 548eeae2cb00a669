package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/trackarr/pkg/tracks"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage per-user track rules",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user's rule set",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesShowCmd,
}

var rulesSetCmd = &cobra.Command{
	Use:   "set <user-id> <rules.json>",
	Short: "Replace a user's rule set from a JSON file",
	Long: `Replace a user's rule set wholesale from a JSON file.

The file holds the rules array or a full rule set document, e.g.:

  {"rules": [{"scope": 0, "audio": ["jpn", "eng"], "subs": ["eng"],
              "subsMode": 2, "enabled": true}]}

Scopes: 0=global, 1=library, 2=series (library/series need "targetId").
Subtitle modes: 0=none, 1=default, 2=prefer-forced, 3=always,
4=only-if-audio-not-preferred.`,
	Args: cobra.ExactArgs(2),
	RunE: runRulesSetCmd,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user's rule set",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDeleteCmd,
}

var rulesUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users with stored rules",
	RunE:  runRulesUsersCmd,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesSetCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesUsersCmd)
}

func runRulesShowCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	set, err := client.Rules(args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch rules: %w", err)
	}

	if jsonOutput {
		printJSON(set)
		return nil
	}

	if len(set.Rules) == 0 {
		fmt.Printf("No rules for user %s\n", set.UserID)
		return nil
	}

	fmt.Printf("Rules for user %s (%d):\n\n", set.UserID, len(set.Rules))
	fmt.Printf("  %-3s %-8s %-20s %-20s %-16s %-24s %s\n", "#", "SCOPE", "TARGET", "AUDIO", "SUBS", "MODE", "ENABLED")
	fmt.Println("  " + strings.Repeat("-", 100))
	for i, r := range set.Rules {
		target := "-"
		if r.TargetID != nil && *r.TargetID != "" {
			target = *r.TargetID
		}
		fmt.Printf("  %-3d %-8s %-20s %-20s %-16s %-24s %v\n",
			i, r.Scope, target,
			strings.Join(r.Audio, ","), strings.Join(r.Subs, ","),
			r.SubsMode, r.Enabled)
	}
	return nil
}

func runRulesSetCmd(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}

	var set tracks.RuleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}

	client := NewClient(serverURL)
	resp, err := client.SetRules(args[0], &set)
	if err != nil {
		return fmt.Errorf("failed to save rules: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Saved %d rule(s) for user %s\n", len(resp.Rules), resp.UserID)
	for _, warning := range resp.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
	return nil
}

func runRulesDeleteCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.DeleteRules(args[0]); err != nil {
		return fmt.Errorf("failed to delete rules: %w", err)
	}
	fmt.Printf("Deleted rules for user %s\n", args[0])
	return nil
}

func runRulesUsersCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	users, err := client.Users()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if jsonOutput {
		printJSON(users)
		return nil
	}

	if len(users) == 0 {
		fmt.Println("No users with stored rules")
		return nil
	}
	for _, u := range users {
		fmt.Println(u)
	}
	return nil
}
