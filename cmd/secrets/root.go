package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/the-guild-org/secrets/internal/infrastructure/system"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point. Run without a subcommand it
// performs the full install, import and reveal pipeline.
var rootCmd = &cobra.Command{
	Use:   "git-secret-action",
	Short: "Reveal git-secret encrypted files as masked CI outputs",
	Long: `Installs a pinned git-secret build, imports the GPG private key given as
the gpg-key input, reveals the encrypted secrets of a local directory or a
freshly cloned repository and publishes every plaintext file as a masked
workflow output.

Settings come from built-in defaults, an optional --config file, INPUT_*
environment variables set by the runner, and flags, in that order.`,
	Args:          cobra.NoArgs,
	RunE:          withContainer(runReveal),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Settings, named after their CI inputs. The key has no flag so it never
	// appears in a process listing.
	flags.String("tool-version", "", "git-secret version to install (default "+system.DefaultToolVersion+")")
	flags.String("tool-install-root", "", "directory the tool is built under (default: system temp dir)")
	flags.String("tool-archive-url", "", "source archive URL template, %s is the version")
	flags.String("tool-build-target", "", "make target that builds git-secret")
	flags.String("source-kind", "", "where secrets come from: local or repository")
	flags.String("source-dir", "", "local secrets directory")
	flags.String("source-work-dir", "", "directory git-secret reveal runs in for local secrets")
	flags.String("source-repository", "", "repository to clone secrets from")
	flags.String("source-clone-dir", "", "clone destination for repository secrets")
	flags.String("source-secrets-path", "", "secrets directory inside the clone")
	flags.String("source-suffix", "", "suffix of encrypted files")
	flags.String("outputs-prefix", "", "prefix of published output names")
	flags.Bool("redaction-gitleaks", true, "scrub gitleaks findings from logs")
	flags.StringSlice("redaction-patterns", nil, "extra regular expressions scrubbed from logs")
}
