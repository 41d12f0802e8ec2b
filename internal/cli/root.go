package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

var rootCmd = &cobra.Command{
	Use:   "watcher-setup <version>",
	Short: "Package a LotCom Watcher release into an MSI installer",
	Long: `watcher-setup packages the published LotCom Watcher release files into an
MSI installer.

The version argument must contain a three-component dotted number such as
1.4.0. It determines the installer's product code and file name; the
upgrade code is fixed so every version upgrades the previous one in place.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid flags)
  3  - Panic or unexpected system error
  10 - Missing or malformed version
  11 - Invalid configuration
  12 - Target executable missing or ambiguous in the release files
  13 - Installer compilation failed`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runPackage,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	err := rootCmd.Execute()
	if err != nil && !isValidationError(err) {
		// Validation failures were already reported by the validator.
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func isValidationError(err error) bool {
	return errors.Is(err, setup.ErrMissingVersion) || errors.Is(err, setup.ErrMalformedVersion)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
