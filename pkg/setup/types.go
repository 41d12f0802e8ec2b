package setup

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version is a release version token as supplied on the command line.
// It is carried verbatim: no normalization is ever applied.
type Version string

// String returns the token unchanged.
func (v Version) String() string { return string(v) }

// UpgradeStrategy controls how the installed-software registry treats a
// newer or older package carrying the same upgrade code.
type UpgradeStrategy string

const (
	// MajorUpgradeDefault removes the previously installed version before
	// installing the new one. Downgrades are refused.
	MajorUpgradeDefault UpgradeStrategy = "major-default"
)

// UISet names the installer runtime dialog set passed to the engine.
type UISet string

const (
	UIMinimal UISet = "WixUI_Minimal"
	UINone    UISet = ""
)

// ShortcutDef is a shortcut configured against the target executable.
type ShortcutDef struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

// Shortcut is a ShortcutDef bound to a concrete file record.
type Shortcut struct {
	Name     string `yaml:"name"`
	Target   string `yaml:"target"`
	Location string `yaml:"location"`
}

// ControlPanelInfo is the metadata shown by the installed-software registry.
type ControlPanelInfo struct {
	Manufacturer    string `yaml:"manufacturer"`
	Contact         string `yaml:"contact"`
	HelpTelephone   string `yaml:"help_telephone"`
	URLInfoAbout    string `yaml:"url_info_about"`
	Comments        string `yaml:"comments"`
	InstallLocation string `yaml:"install_location"`
	NoModify        bool   `yaml:"no_modify"`
	NoRepair        bool   `yaml:"no_repair"`
}

// CloseAction terminates a running process before install or upgrade.
type CloseAction struct {
	ID           string        `yaml:"id"`
	Target       string        `yaml:"target"`
	Timeout      time.Duration `yaml:"timeout"`
	ShowCloseMsg bool          `yaml:"show_close_message"`
	PromptReboot bool          `yaml:"prompt_reboot"`
}

// FileRecord is one concrete file resolved from a file set.
type FileRecord struct {
	Path         string     `yaml:"path"`
	RelativePath string     `yaml:"relative_path"`
	Name         string     `yaml:"name"`
	SizeBytes    int64      `yaml:"size_bytes"`
	Checksum     string     `yaml:"checksum"`
	Shortcuts    []Shortcut `yaml:"shortcuts,omitempty"`
}

// FileSet is "all files under a source directory matching Pattern".
// Files is populated by a FileEnumerator.
type FileSet struct {
	Pattern string       `yaml:"pattern"`
	Files   []FileRecord `yaml:"files"`
}

// StaticConfig is the compile-time product configuration a descriptor is
// built from.
type StaticConfig struct {
	// ProductName is the display name registered with the installed-software system.
	ProductName string

	// ProductBaseName prefixes output artifacts and the close action id.
	ProductBaseName string

	// UpgradeCode ties every version of the product together.
	UpgradeCode uuid.UUID

	ControlPanel ControlPanelInfo

	// InstallDir is the absolute install root on the target machine.
	InstallDir string

	// FilePattern selects files under the source root.
	FilePattern string

	// TargetExecutable is the file name the shortcuts and close action point at.
	TargetExecutable string

	Shortcuts []ShortcutDef

	// CloseTarget is the process image name terminated before install.
	CloseTarget  string
	CloseTimeout time.Duration

	UI UISet

	// OutputDir is where the engine writes the installer.
	OutputDir string
}

// Validate checks that the configuration can produce a complete descriptor.
// It returns a multi-error if multiple validation failures occur.
func (c *StaticConfig) Validate() error {
	var errs []error

	if c.ProductName == "" {
		errs = append(errs, fmt.Errorf("ProductName is required: %w", ErrInvalidConfig))
	}
	if c.ProductBaseName == "" {
		errs = append(errs, fmt.Errorf("ProductBaseName is required: %w", ErrInvalidConfig))
	}
	if c.UpgradeCode == uuid.Nil {
		errs = append(errs, fmt.Errorf("UpgradeCode is required: %w", ErrInvalidConfig))
	}
	if c.InstallDir == "" {
		errs = append(errs, fmt.Errorf("InstallDir is required: %w", ErrInvalidConfig))
	}
	if c.FilePattern == "" {
		errs = append(errs, fmt.Errorf("FilePattern is required: %w", ErrInvalidConfig))
	}
	if c.TargetExecutable == "" {
		errs = append(errs, fmt.Errorf("TargetExecutable is required: %w", ErrInvalidConfig))
	}
	if len(c.Shortcuts) == 0 {
		errs = append(errs, fmt.Errorf("at least one shortcut is required: %w", ErrInvalidConfig))
	}
	if c.CloseTarget == "" {
		errs = append(errs, fmt.Errorf("CloseTarget is required: %w", ErrInvalidConfig))
	}
	if c.CloseTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CloseTimeout must be positive: %w", ErrInvalidConfig))
	}
	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Descriptor is the complete declarative specification of one installable
// unit. It is handed to a Compiler exactly once.
type Descriptor struct {
	Name            string           `yaml:"name"`
	ProductID       uuid.UUID        `yaml:"product_id"`
	UpgradeCode     uuid.UUID        `yaml:"upgrade_code"`
	Version         Version          `yaml:"version"`
	UpgradeStrategy UpgradeStrategy  `yaml:"upgrade_strategy"`
	InstallDir      string           `yaml:"install_dir"`
	SourceDir       string           `yaml:"source_dir"`
	FileSet         FileSet          `yaml:"file_set"`
	ControlPanel    ControlPanelInfo `yaml:"control_panel"`
	CloseAction     CloseAction      `yaml:"close_action"`
	UI              UISet            `yaml:"ui"`
	OutDir          string           `yaml:"out_dir"`
	OutFileName     string           `yaml:"out_file_name"`

	// ReleaseEnv is passed to the engine process explicitly.
	ReleaseEnv map[string]string `yaml:"release_env"`
}

// Validate reports every missing field. A descriptor that fails validation
// must not reach a Compiler.
func (d *Descriptor) Validate() error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, fmt.Errorf("Name is required: %w", ErrInvalidDescriptor))
	}
	if d.ProductID == uuid.Nil {
		errs = append(errs, fmt.Errorf("ProductID is required: %w", ErrInvalidDescriptor))
	}
	if d.UpgradeCode == uuid.Nil {
		errs = append(errs, fmt.Errorf("UpgradeCode is required: %w", ErrInvalidDescriptor))
	}
	if d.ProductID == d.UpgradeCode {
		errs = append(errs, fmt.Errorf("ProductID must differ from UpgradeCode: %w", ErrInvalidDescriptor))
	}
	if d.Version == "" {
		errs = append(errs, fmt.Errorf("Version is required: %w", ErrInvalidDescriptor))
	}
	if d.InstallDir == "" {
		errs = append(errs, fmt.Errorf("InstallDir is required: %w", ErrInvalidDescriptor))
	}
	if d.SourceDir == "" {
		errs = append(errs, fmt.Errorf("SourceDir is required: %w", ErrInvalidDescriptor))
	}
	if len(d.FileSet.Files) == 0 {
		errs = append(errs, fmt.Errorf("FileSet resolved no files: %w", ErrInvalidDescriptor))
	}
	if d.CloseAction.Target == "" {
		errs = append(errs, fmt.Errorf("CloseAction.Target is required: %w", ErrInvalidDescriptor))
	}
	if d.OutDir == "" || d.OutFileName == "" {
		errs = append(errs, fmt.Errorf("output naming is required: %w", ErrInvalidDescriptor))
	}

	return errors.Join(errs...)
}

// Shortcuts returns every shortcut attached to any file in the set.
func (d *Descriptor) Shortcuts() []Shortcut {
	var out []Shortcut
	for _, f := range d.FileSet.Files {
		out = append(out, f.Shortcuts...)
	}
	return out
}
