// Package product holds the static packaging configuration for LotCom Watcher.
package product

import (
	"github.com/google/uuid"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

const (
	Name             = "LotCom Watcher"
	BaseName         = "LotComWatcher"
	TargetExecutable = "LotComWatcher.exe"
	InstallDir       = `C:\ProgramData\Yamada North America\LotCom Watcher`
)

// UpgradeCodeString is shared by every LotCom Watcher version ever shipped.
//
// Never change or regenerate it: the installed-software registry relies on
// it to recognize a new package as an upgrade of an installed one. A new
// value orphans every installation in the field, which would then be
// installed side by side instead of upgraded.
const UpgradeCodeString = "B8922687-A74A-45D4-96AA-17C91224DB7A"

// UpgradeCode returns UpgradeCodeString parsed as a uuid.
func UpgradeCode() uuid.UUID {
	return uuid.MustParse(UpgradeCodeString)
}

// Config returns the static configuration for LotCom Watcher packages.
// Each call returns a fresh copy; callers may adjust it before building.
func Config() setup.StaticConfig {
	return setup.StaticConfig{
		ProductName:     Name,
		ProductBaseName: BaseName,
		UpgradeCode:     UpgradeCode(),
		ControlPanel: setup.ControlPanelInfo{
			Manufacturer:    "Yamada North America",
			Contact:         "YNA IT",
			HelpTelephone:   "(937) 260-9790",
			URLInfoAbout:    "https://github.com/LotCoM/LotCom-watcher/blob/stable/README.md",
			Comments:        "LotCom Watcher Application",
			InstallLocation: "[INSTALLDIR]",
			NoModify:        true,
			NoRepair:        true,
		},
		InstallDir:       InstallDir,
		FilePattern:      setup.DefaultFilePattern,
		TargetExecutable: TargetExecutable,
		Shortcuts: []setup.ShortcutDef{
			{Name: Name, Location: "%StartMenuFolder%"},
			{Name: Name, Location: "%Desktop%"},
		},
		CloseTarget:  "LotCoMWatcher.exe",
		CloseTimeout: setup.DefaultCloseTimeout,
		UI:           setup.UIMinimal,
		OutputDir:    setup.DefaultOutputDir,
	}
}
