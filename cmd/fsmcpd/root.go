package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	root    string
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fsmcpd",
	Short: "Filesystem access MCP server",
	Long: `fsmcpd exposes a disciplined filesystem-access layer to an
automation client (a language-model agent) over the Model Context
Protocol: directory listing, name/path finding, textual search, ranged
file reading, metadata inspection, and controlled mutation, all bound to
a configured server root or the enclosing git repository.

  fsmcpd serve        Start the MCP server over stdio
  fsmcpd config show  Print the resolved configuration
  fsmcpd version      Show version information`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&root, "root", "", "Server root directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .complement-mcp.yaml in the server root)")
}

// GetVerbose returns the verbose flag value for use by subcommands.
func GetVerbose() bool {
	return verbose
}

// GetRoot returns the --root flag value for use by subcommands.
func GetRoot() string {
	return root
}

// GetConfigFile returns the config file path for use by subcommands.
func GetConfigFile() string {
	return cfgFile
}

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(GetConfigFile())
	if path == "" {
		return
	}
	_ = os.Setenv("COMPLEMENT_MCP_CONFIG", path)
}
