// noteguard serves a single note vault over MCP stdio, confining every
// read and write the connected agent issues to that vault directory.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/noteguard/noteguard/internal/config"
	"github.com/noteguard/noteguard/internal/server"
	"github.com/noteguard/noteguard/internal/vault"
	"github.com/noteguard/noteguard/internal/version"
)

func main() {
	if err := newApp().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "noteguard",
		Short:         "Sandboxed note-vault MCP server",
		Long:          "noteguard exposes list_files, read_files, scan_todos and write_file over MCP stdio, restricted to a single vault directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("vault", "", "vault root directory (or "+config.EnvVault+")")
	rootCmd.PersistentFlags().String("config", "", "optional YAML config file (or "+config.EnvConfig+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.AddCommand(newServeCommand(), newVersionCommand())
	// Bare invocation serves; MCP hosts typically run the binary with no args.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	}
	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the vault over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Version)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr) // stdout carries the MCP wire
	levelName, _ := cmd.Flags().GetString("log-level")
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	if levelName != "" {
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	vaultFlag, _ := cmd.Flags().GetString("vault")
	root, err := vault.ResolveRoot(config.VaultPath(vaultFlag, cfg))
	if err != nil {
		return err
	}
	log.WithField("vault", root.Path()).Info("serving vault")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(root, log).Run(ctx)
}
