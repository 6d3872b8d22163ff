package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/irvingouj/complement-mcp/internal/config"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View the resolved filesystem-service configuration.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (COMPLEMENT_MCP_*)
  3. Project config (.complement-mcp.yaml in the server root)
  4. Home config (~/.complement-mcp/config.yaml)
  5. Defaults

Environment variables:
  COMPLEMENT_MCP_CONFIG               - Explicit config file path
  COMPLEMENT_MCP_SERVER_ROOT          - Server root directory
  COMPLEMENT_MCP_MAX_READ_BYTES       - Cap on read_file window size
  COMPLEMENT_MCP_MAX_WALK_RESULTS     - Cap on list/find/search result counts
  COMPLEMENT_MCP_DEFAULT_CONTEXT_LINES - Default search_text context lines
  COMPLEMENT_MCP_VERBOSE              - Enable verbose output (true/1)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "Print as JSON instead of a table")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	overrides := &config.Config{ServerRoot: GetRoot(), Verbose: GetVerbose()}
	resolved := config.Resolve(overrides)

	if configJSON {
		data, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("complement-mcp configuration")
	fmt.Println("============================")
	fmt.Println()

	fmt.Println("Config files:")
	homeConfig := filepath.Join(os.Getenv("HOME"), ".complement-mcp", "config.yaml")
	if _, err := os.Stat(homeConfig); err == nil {
		fmt.Printf("  found:     %s\n", homeConfig)
	} else {
		fmt.Printf("  not found: %s\n", homeConfig)
	}

	root := GetRoot()
	if root == "" {
		root, _ = os.Getwd()
	}
	projectConfig := filepath.Join(root, ".complement-mcp.yaml")
	if _, err := os.Stat(projectConfig); err == nil {
		fmt.Printf("  found:     %s\n", projectConfig)
	} else {
		fmt.Printf("  not found: %s\n", projectConfig)
	}

	fmt.Println()
	fmt.Println("Resolved values:")
	fmt.Printf("  server_root:           %v  (from %s)\n", resolved.ServerRoot.Value, resolved.ServerRoot.Source)
	fmt.Printf("  max_read_bytes:        %v  (from %s)\n", resolved.MaxReadBytes.Value, resolved.MaxReadBytes.Source)
	fmt.Printf("  max_walk_results:      %v  (from %s)\n", resolved.MaxWalkResults.Value, resolved.MaxWalkResults.Source)
	fmt.Printf("  default_context_lines: %v  (from %s)\n", resolved.DefaultContextLines.Value, resolved.DefaultContextLines.Source)
	fmt.Printf("  verbose:               %v  (from %s)\n", resolved.Verbose.Value, resolved.Verbose.Source)

	fmt.Println()
	fmt.Println("Environment variables (if set):")
	envVars := []string{
		"COMPLEMENT_MCP_CONFIG",
		"COMPLEMENT_MCP_SERVER_ROOT",
		"COMPLEMENT_MCP_MAX_READ_BYTES",
		"COMPLEMENT_MCP_MAX_WALK_RESULTS",
		"COMPLEMENT_MCP_DEFAULT_CONTEXT_LINES",
		"COMPLEMENT_MCP_VERBOSE",
	}
	anySet := false
	for _, env := range envVars {
		if v := os.Getenv(env); v != "" {
			fmt.Printf("  %s=%s\n", env, v)
			anySet = true
		}
	}
	if !anySet {
		fmt.Println("  (none set)")
	}

	return nil
}
