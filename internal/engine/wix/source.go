package wix

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/LotCoM/watcher-setup/internal/checksum"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

const (
	namespaceWix  = "http://wixtoolset.org/schemas/v4/wxs"
	namespaceUtil = "http://wixtoolset.org/schemas/v4/wxs/util"
	namespaceUI   = "http://wixtoolset.org/schemas/v4/wxs/ui"

	installDirID = "INSTALLDIR"
	componentsID = "ReleaseFiles"
)

// shortcutFolders maps shortcut placement tokens onto WiX standard directories.
var shortcutFolders = map[string]string{
	"%StartMenuFolder%": "ProgramMenuFolder",
	"%ProgramMenu%":     "ProgramMenuFolder",
	"%Desktop%":         "DesktopFolder",
	"%Startup%":         "StartupFolder",
}

type wixDocument struct {
	XMLName   xml.Name   `xml:"Wix"`
	Xmlns     string     `xml:"xmlns,attr"`
	XmlnsUtil string     `xml:"xmlns:util,attr"`
	XmlnsUI   string     `xml:"xmlns:ui,attr"`
	Package   wixPackage `xml:"Package"`
}

type wixPackage struct {
	Name         string `xml:"Name,attr"`
	Manufacturer string `xml:"Manufacturer,attr"`
	Version      string `xml:"Version,attr"`
	UpgradeCode  string `xml:"UpgradeCode,attr"`
	ProductCode  string `xml:"ProductCode,attr"`
	Scope        string `xml:"Scope,attr"`
	Compressed   string `xml:"Compressed,attr"`

	MajorUpgrade     *wixMajorUpgrade       `xml:"MajorUpgrade"`
	MediaTemplate    wixMediaTemplate       `xml:"MediaTemplate"`
	Properties       []wixProperty          `xml:"Property"`
	SetProperty      *wixSetProperty        `xml:"SetProperty"`
	SetDirectory     wixSetDirectory        `xml:"SetDirectory"`
	Directories      []wixStandardDirectory `xml:"StandardDirectory"`
	ComponentGroup   wixComponentGroup      `xml:"ComponentGroup"`
	Feature          wixFeature             `xml:"Feature"`
	CloseApplication wixCloseApplication    `xml:"util:CloseApplication"`
	UI               *wixUI                 `xml:"ui:WixUI"`
}

type wixMajorUpgrade struct {
	DowngradeErrorMessage string `xml:"DowngradeErrorMessage,attr"`
}

type wixMediaTemplate struct {
	EmbedCab string `xml:"EmbedCab,attr"`
}

type wixProperty struct {
	ID    string `xml:"Id,attr"`
	Value string `xml:"Value,attr"`
}

type wixSetProperty struct {
	ID    string `xml:"Id,attr"`
	Value string `xml:"Value,attr"`
	After string `xml:"After,attr"`
}

type wixSetDirectory struct {
	ID    string `xml:"Id,attr"`
	Value string `xml:"Value,attr"`
}

type wixStandardDirectory struct {
	ID        string        `xml:"Id,attr"`
	Directory *wixDirectory `xml:"Directory,omitempty"`
}

type wixDirectory struct {
	ID       string          `xml:"Id,attr"`
	Name     string          `xml:"Name,attr"`
	Children []*wixDirectory `xml:"Directory"`
}

type wixComponentGroup struct {
	ID         string         `xml:"Id,attr"`
	Components []wixComponent `xml:"Component"`
}

type wixComponent struct {
	ID        string  `xml:"Id,attr"`
	Directory string  `xml:"Directory,attr"`
	File      wixFile `xml:"File"`
}

type wixFile struct {
	ID        string        `xml:"Id,attr"`
	Name      string        `xml:"Name,attr"`
	Source    string        `xml:"Source,attr"`
	KeyPath   string        `xml:"KeyPath,attr"`
	Shortcuts []wixShortcut `xml:"Shortcut"`
}

type wixShortcut struct {
	ID               string `xml:"Id,attr"`
	Name             string `xml:"Name,attr"`
	Directory        string `xml:"Directory,attr"`
	WorkingDirectory string `xml:"WorkingDirectory,attr"`
	Advertise        string `xml:"Advertise,attr"`
}

type wixFeature struct {
	ID       string               `xml:"Id,attr"`
	Title    string               `xml:"Title,attr"`
	GroupRef wixComponentGroupRef `xml:"ComponentGroupRef"`
}

type wixComponentGroupRef struct {
	ID string `xml:"Id,attr"`
}

type wixCloseApplication struct {
	ID           string `xml:"Id,attr"`
	Target       string `xml:"Target,attr"`
	CloseMessage string `xml:"CloseMessage,attr"`
	RebootPrompt string `xml:"RebootPrompt,attr"`
	Timeout      string `xml:"Timeout,attr"`
}

type wixUI struct {
	ID string `xml:"Id,attr"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// idFor returns a stable WiX identifier for a relative path. Paths that
// differ only in case share an identifier, as they would share a location
// on the target machine.
func idFor(prefix, rel string) string {
	return prefix + checksum.New().Calculate([]byte(strings.ToLower(rel)))[:16]
}

// lastSegment returns the final element of a Windows or slash path.
func lastSegment(p string) string {
	p = strings.TrimRight(p, `\/`)
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// RenderSource renders d as a WiX v4 source document.
func RenderSource(d *setup.Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	root := &wixDirectory{ID: installDirID, Name: lastSegment(d.InstallDir)}
	dirs := map[string]*wixDirectory{".": root}

	claimed := map[string]string{}
	claim := func(id, rel string) error {
		if prev, ok := claimed[id]; ok && prev != rel {
			return fmt.Errorf("%q and %q differ only in case: %w", prev, rel, setup.ErrInvalidDescriptor)
		}
		claimed[id] = rel
		return nil
	}

	var ensureDir func(rel string) (*wixDirectory, error)
	ensureDir = func(rel string) (*wixDirectory, error) {
		if dir, ok := dirs[rel]; ok {
			return dir, nil
		}
		parent, err := ensureDir(path.Dir(rel))
		if err != nil {
			return nil, err
		}
		dir := &wixDirectory{ID: idFor("dir", rel), Name: path.Base(rel)}
		if err := claim(dir.ID, rel); err != nil {
			return nil, err
		}
		parent.Children = append(parent.Children, dir)
		dirs[rel] = dir
		return dir, nil
	}

	usedFolders := map[string]bool{}
	components := make([]wixComponent, 0, len(d.FileSet.Files))
	for _, f := range d.FileSet.Files {
		dir, err := ensureDir(path.Dir(f.RelativePath))
		if err != nil {
			return nil, err
		}

		file := wixFile{
			ID:      idFor("fil", f.RelativePath),
			Name:    f.Name,
			Source:  f.Path,
			KeyPath: "yes",
		}
		if err := claim(file.ID, f.RelativePath); err != nil {
			return nil, err
		}
		for i, sc := range f.Shortcuts {
			folder, ok := shortcutFolders[sc.Location]
			if !ok {
				return nil, fmt.Errorf("unsupported shortcut location %q for %s: %w", sc.Location, f.RelativePath, setup.ErrInvalidDescriptor)
			}
			usedFolders[folder] = true
			file.Shortcuts = append(file.Shortcuts, wixShortcut{
				ID:               idFor("lnk", f.RelativePath+"#"+strconv.Itoa(i)),
				Name:             sc.Name,
				Directory:        folder,
				WorkingDirectory: dir.ID,
				Advertise:        "yes",
			})
		}

		components = append(components, wixComponent{
			ID:        idFor("cmp", f.RelativePath),
			Directory: dir.ID,
			File:      file,
		})
	}

	standard := []wixStandardDirectory{{ID: "TARGETDIR", Directory: root}}
	folders := make([]string, 0, len(usedFolders))
	for folder := range usedFolders {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	for _, folder := range folders {
		standard = append(standard, wixStandardDirectory{ID: folder})
	}

	cp := d.ControlPanel
	props := []wixProperty{
		{ID: "ARPCONTACT", Value: cp.Contact},
		{ID: "ARPHELPTELEPHONE", Value: cp.HelpTelephone},
		{ID: "ARPURLINFOABOUT", Value: cp.URLInfoAbout},
		{ID: "ARPCOMMENTS", Value: cp.Comments},
	}
	if cp.NoModify {
		props = append(props, wixProperty{ID: "ARPNOMODIFY", Value: "1"})
	}
	if cp.NoRepair {
		props = append(props, wixProperty{ID: "ARPNOREPAIR", Value: "1"})
	}

	pkg := wixPackage{
		Name:          d.Name,
		Manufacturer:  cp.Manufacturer,
		Version:       d.Version.String(),
		UpgradeCode:   strings.ToUpper(d.UpgradeCode.String()),
		ProductCode:   strings.ToUpper(d.ProductID.String()),
		Scope:         "perMachine",
		Compressed:    "yes",
		MediaTemplate: wixMediaTemplate{EmbedCab: "yes"},
		Properties:    props,
		SetDirectory:  wixSetDirectory{ID: installDirID, Value: d.InstallDir},
		Directories:   standard,
		ComponentGroup: wixComponentGroup{
			ID:         componentsID,
			Components: components,
		},
		Feature: wixFeature{
			ID:       "Main",
			Title:    d.Name,
			GroupRef: wixComponentGroupRef{ID: componentsID},
		},
		CloseApplication: wixCloseApplication{
			ID:           d.CloseAction.ID,
			Target:       d.CloseAction.Target,
			CloseMessage: yesNo(d.CloseAction.ShowCloseMsg),
			RebootPrompt: yesNo(d.CloseAction.PromptReboot),
			Timeout:      strconv.Itoa(int(d.CloseAction.Timeout.Seconds())),
		},
	}
	if d.UpgradeStrategy == setup.MajorUpgradeDefault {
		pkg.MajorUpgrade = &wixMajorUpgrade{
			DowngradeErrorMessage: "A newer version of [ProductName] is already installed.",
		}
	}
	if cp.InstallLocation != "" {
		pkg.SetProperty = &wixSetProperty{ID: "ARPINSTALLLOCATION", Value: cp.InstallLocation, After: "CostFinalize"}
	}
	if d.UI != setup.UINone {
		pkg.UI = &wixUI{ID: string(d.UI)}
	}

	doc := wixDocument{
		Xmlns:     namespaceWix,
		XmlnsUtil: namespaceUtil,
		XmlnsUI:   namespaceUI,
		Package:   pkg,
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render WiX source: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
