package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/strictpair/internal/config"
	"github.com/zjrosen/strictpair/internal/syntax"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the default configuration",
	Long: `Write the default configuration with comments to PATH
(default: .strictpair/config.yaml). An existing file is kept unless --force
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configOpaqueKindsCmd = &cobra.Command{
	Use:   "opaque-kinds KIND...",
	Short: "Set the syntax node kinds treated as free text",
	Long: `Replace pairing.opaque_kinds in the active config file, keeping its
comments. A kind matches itself and dotted sub-kinds; end it with * to match
a prefix. Run "strictpair tree FILE" to see the kinds a grammar produces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigOpaqueKinds,
}

var configLanguageCmd = &cobra.Command{
	Use:       "language LANG",
	Short:     "Set the syntax language override",
	Args:      cobra.ExactArgs(1),
	ValidArgs: syntax.Languages(),
	RunE:      runConfigLanguage,
}

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configOpaqueKindsCmd, configLanguageCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

// activeConfigPath is the file the config was read from, or the local
// default when none was found.
func activeConfigPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used
		}
	}
	if cfgFile != "" {
		return cfgFile
	}
	return localConfigPath
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := localConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runConfigOpaqueKinds(cmd *cobra.Command, args []string) error {
	path := activeConfigPath()
	if err := config.SaveOpaqueKinds(path, args); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated pairing.opaque_kinds in %s\n", path)
	return nil
}

func runConfigLanguage(cmd *cobra.Command, args []string) error {
	if _, err := syntax.ForLanguage(args[0]); err != nil {
		return err
	}
	path := activeConfigPath()
	if err := config.SaveLanguage(path, args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated syntax.language in %s\n", path)
	return nil
}
