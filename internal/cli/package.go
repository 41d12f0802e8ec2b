package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LotCoM/watcher-setup/internal/checksum"
	"github.com/LotCoM/watcher-setup/internal/config"
	"github.com/LotCoM/watcher-setup/internal/descriptor"
	"github.com/LotCoM/watcher-setup/internal/engine/wix"
	"github.com/LotCoM/watcher-setup/internal/files/scanner"
	"github.com/LotCoM/watcher-setup/internal/logging"
	"github.com/LotCoM/watcher-setup/internal/product"
	"github.com/LotCoM/watcher-setup/internal/services"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// dotenvFile holds local overrides such as WATCHER_SETUP_ENGINE.
const dotenvFile = ".env"

var packageFlags struct {
	configPath    string
	sourceDir     string
	emitOnly      bool
	strictVersion bool
}

func init() {
	rootCmd.Flags().StringVar(&packageFlags.configPath, "config", "", "Path to build settings (default: ./setup.yaml when present)")
	rootCmd.Flags().StringVar(&packageFlags.sourceDir, "source", "", "Release directory to package (default: "+config.DefaultSourceDir+")")
	rootCmd.Flags().BoolVar(&packageFlags.emitOnly, "emit-only", false, "Write the installer source and manifest without running the engine")
	rootCmd.Flags().BoolVar(&packageFlags.strictVersion, "strict-version", false, "Require the version to be exactly MAJOR.MINOR.PATCH")
}

// runPlan is everything resolved from flags, files and environment before
// the packaging run starts.
type runPlan struct {
	build   *config.BuildConfig
	request services.PackageConfig
}

func runPackage(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	plan, err := resolvePlan(workDir, os.Getenv, logger)
	if err != nil {
		return err
	}

	builder := descriptor.NewBuilder(scanner.NewScanner(checksum.New()))
	compiler := wix.NewCompiler(wix.Options{
		Executable: plan.build.Engine.Executable,
		Extensions: plan.build.Engine.Extensions,
		Args:       plan.build.Engine.Args,
		EmitOnly:   packageFlags.emitOnly,
		Logger:     logger,
	})
	packager := services.NewPackager(builder, compiler, logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt signals (Ctrl+C, SIGTERM); the engine process is killed with the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling packaging...")
			cancel()
		case <-ctx.Done():
		}
	}()

	artifact, err := packager.Package(ctx, args, plan.request)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if artifact.InstallerPath != "" {
		fmt.Fprintln(out, artifact.InstallerPath)
	} else {
		fmt.Fprintln(out, artifact.SourcePath)
	}
	return nil
}

// resolvePlan merges the build settings file, the .env overrides and the
// flags into one packaging request. Nothing here touches the process
// environment.
func resolvePlan(workDir string, getenv func(string) string, logger setup.Logger) (*runPlan, error) {
	lookup, err := envLookup(filepath.Join(workDir, dotenvFile), getenv)
	if err != nil {
		return nil, err
	}

	build, err := loadBuildConfig(workDir, packageFlags.configPath)
	if err != nil {
		return nil, err
	}
	build = build.WithDefaults(lookup)

	sourceDir := build.SourceDir
	if packageFlags.sourceDir != "" {
		sourceDir = packageFlags.sourceDir
	}
	if !filepath.IsAbs(sourceDir) {
		sourceDir = filepath.Join(workDir, sourceDir)
	}
	logger.Verbose("Source directory: %s", sourceDir)
	logger.Verbose("Engine: %s", build.Engine.Executable)

	return &runPlan{
		build: build,
		request: services.PackageConfig{
			Product:       build.Apply(product.Config()),
			SourceDir:     sourceDir,
			WorkDir:       workDir,
			StrictVersion: packageFlags.strictVersion,
		},
	}, nil
}

// loadBuildConfig reads the explicit config path, or setup.yaml in workDir
// when it exists. Only the implicit file may be absent.
func loadBuildConfig(workDir, explicit string) (*config.BuildConfig, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		cfg, err := config.Load(explicit)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%s: %w: %w", explicit, err, setup.ErrInvalidConfig)
		}
		return cfg, err
	}

	cfg, err := config.LoadDir(workDir)
	if errors.Is(err, config.ErrConfigNotFound) {
		return &config.BuildConfig{}, nil
	}
	return cfg, err
}

// envLookup layers the process environment over an optional dotenv file.
func envLookup(path string, getenv func(string) string) (func(string) string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return getenv, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, setup.ErrInvalidConfig)
	}

	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return values[key]
	}, nil
}
