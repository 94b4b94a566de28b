// Package cli is the tasktrack terminal client: a cobra command tree over the
// SDK, the kanban controller, the reminder editor and the session stores.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasktrack/pkg/client"
	"tasktrack/pkg/logger"
)

var (
	verbose    bool
	serverFlag string
	configPath string
	rootCmd    *cobra.Command
)

// env state shared by the commands of one invocation
type env struct {
	cfg    *Config
	client *client.Client
}

var current *env

func init() {
	rootCmd = &cobra.Command{
		Use:   "tasktrack",
		Short: "TaskTrack terminal client",
		Long: `tasktrack manages TaskTrack boards from the terminal.

It signs in against a TaskTrack server, shows boards as kanban columns and
edits tasks, comments, attachments and reminder settings.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server URL (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tasktrack/config.yaml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(focusCmd)
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger.SetOutput(os.Stderr, level)

	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if serverFlag != "" {
		cfg.Server = serverFlag
	}

	c := client.New(cfg.Server, client.WithTokens(client.Tokens{
		AccessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
	}))

	// every session change is written back so the next command reuses it
	c.Auth.Subscribe(func(event client.AuthEvent, tokens client.Tokens) {
		cfg.AccessToken = tokens.AccessToken
		cfg.RefreshToken = tokens.RefreshToken
		if err := SaveConfig(configPath, cfg); err != nil {
			logger.Warn("Failed to save session", "event", event, "error", err)
		}
	})

	current = &env{cfg: cfg, client: c}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// requireLogin fails fast when no session is stored
func requireLogin() error {
	if current.client.Tokens().AccessToken == "" {
		return fmt.Errorf("not logged in, run: tasktrack login")
	}
	return nil
}

// boardArg explicit id or the default board from the config
func boardArg(args []string, i int) (string, error) {
	if len(args) > i && args[i] != "" {
		return args[i], nil
	}
	if current.cfg.DefaultBoard != "" {
		return current.cfg.DefaultBoard, nil
	}
	return "", fmt.Errorf("board id required (or set default_board in %s)", configPath)
}
