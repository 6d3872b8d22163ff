package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/irvingouj/complement-mcp/internal/config"
	"github.com/irvingouj/complement-mcp/internal/fscore"
	"github.com/irvingouj/complement-mcp/internal/toolserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `serve loads the resolved configuration, constructs the filesystem
core bound to the configured server root, registers every fs.* tool, and
blocks serving MCP requests over stdio until the client disconnects.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	flagOverrides := &config.Config{
		ServerRoot: GetRoot(),
		Verbose:    GetVerbose(),
	}

	cfg, err := config.Load(flagOverrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	VerbosePrintf("server root: %s\n", cfg.ServerRoot)
	VerbosePrintf("max read bytes: %d, max walk results: %d, default context lines: %d\n",
		cfg.MaxReadBytes, cfg.MaxWalkResults, cfg.DefaultContextLines)

	core := fscore.NewService(fscore.ServerConfig{
		ServerRoot:          cfg.ServerRoot,
		MaxReadBytes:        cfg.MaxReadBytes,
		MaxWalkResults:      cfg.MaxWalkResults,
		DefaultContextLines: cfg.DefaultContextLines,
		DenyNames:           []string{".git"},
	})

	mcpServer := server.NewMCPServer("complement-mcp", version)
	if err := toolserver.Register(mcpServer, core); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	VerbosePrintf("serving MCP requests over stdio\n")
	return server.ServeStdio(mcpServer)
}
