package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/macro-cli/internal/config"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/server"
	"github.com/mj1618/macro-cli/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the macro editor",
	Long: `Start a Model Context Protocol (MCP) server that exposes the editor as
tools: new, load, save, show, outline, render, run, do and one tool per
edit op. The server edits one document at a time; --file is loaded at
startup when it exists.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  macro-cli serve
  macro-cli -f login.json serve --autosave
  macro-cli serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default: serve.transport from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http (default: serve.port from config)")
	serveCmd.Flags().Bool("autosave", false, "Save the document after every successful edit")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	autosave, _ := cmd.Flags().GetBool("autosave")

	cfg := config.Instance
	if transport == "" {
		transport = cfg.Serve.Transport
	}
	if port == 0 {
		port = cfg.Serve.Port
	}

	srv, err := server.New(server.Config{
		Name:     "macro-cli",
		Version:  version.Version,
		File:     docPath(),
		Autosave: autosave,
		Runner:   newRunner(nil),
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.LogInfo("starting MCP server", map[string]interface{}{"transport": transport, "port": port, "file": docPath()})
	return srv.Serve(transport, port)
}
