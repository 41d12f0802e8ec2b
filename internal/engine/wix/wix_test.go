package wix

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/LotCoM/watcher-setup/internal/checksum"
	"github.com/LotCoM/watcher-setup/internal/descriptor"
	"github.com/LotCoM/watcher-setup/internal/files/filesystem"
	"github.com/LotCoM/watcher-setup/internal/files/scanner"
	"github.com/LotCoM/watcher-setup/internal/identity"
	"github.com/LotCoM/watcher-setup/internal/logging"
	"github.com/LotCoM/watcher-setup/internal/product"
	"github.com/LotCoM/watcher-setup/pkg/setup"
)

type recordedRun struct {
	dir  string
	env  []string
	name string
	args []string
}

type fakeRunner struct {
	runs   []recordedRun
	output []byte
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
	f.runs = append(f.runs, recordedRun{dir: dir, env: env, name: name, args: args})
	return f.output, f.err
}

func buildDescriptor(t *testing.T, outDir string) *setup.Descriptor {
	t.Helper()
	fs := filesystem.NewMemoryFileSystem("/release")
	fs.AddFile("LotComWatcher.exe", "MZ")
	fs.AddFile("appsettings.json", "{}")
	fs.AddFile("runtimes/win-x64/native/e_sqlite3.dll", "native")

	cfg := product.Config()
	cfg.OutputDir = outDir

	b := descriptor.NewBuilder(scanner.NewScannerWithFS(checksum.New(), fs))
	d, err := b.Build("1.2.3", identity.ForVersion(cfg.ProductName, "1.2.3"), cfg, "/release", "/work")
	require.NoError(t, err)
	return d
}

func TestRenderSource_PackageAttributes(t *testing.T) {
	d := buildDescriptor(t, t.TempDir())

	src, err := RenderSource(d)
	require.NoError(t, err)
	text := string(src)

	assert.True(t, strings.HasPrefix(text, xml.Header))
	assert.Contains(t, text, `xmlns="http://wixtoolset.org/schemas/v4/wxs"`)
	assert.Contains(t, text, `Name="LotCom Watcher"`)
	assert.Contains(t, text, `Version="1.2.3"`)
	assert.Contains(t, text, `UpgradeCode="B8922687-A74A-45D4-96AA-17C91224DB7A"`)
	assert.Contains(t, text, `ProductCode="7C944604-45FD-8922-30E8-91ABB9C16A16"`)
	assert.Contains(t, text, `<MajorUpgrade`)
	assert.Contains(t, text, `<Property Id="ARPNOMODIFY" Value="1"></Property>`)
	assert.Contains(t, text, `<Property Id="ARPNOREPAIR" Value="1"></Property>`)
	assert.Contains(t, text, `<Property Id="ARPHELPTELEPHONE" Value="(937) 260-9790"></Property>`)
	assert.Contains(t, text, `<SetProperty Id="ARPINSTALLLOCATION" Value="[INSTALLDIR]" After="CostFinalize"></SetProperty>`)
	assert.Contains(t, text, `<ui:WixUI Id="WixUI_Minimal"></ui:WixUI>`)
	assert.Contains(t, text,
		`<util:CloseApplication Id="LotComWatcher_1.2.3" Target="LotCoMWatcher.exe" CloseMessage="no" RebootPrompt="no" Timeout="15"></util:CloseApplication>`)
}

func TestRenderSource_DirectoriesAndShortcuts(t *testing.T) {
	d := buildDescriptor(t, t.TempDir())

	src, err := RenderSource(d)
	require.NoError(t, err)

	var doc wixDocument
	require.NoError(t, xml.Unmarshal(src, &doc))

	pkg := doc.Package
	require.Len(t, pkg.Directories, 3)
	assert.Equal(t, "TARGETDIR", pkg.Directories[0].ID)
	assert.Equal(t, "DesktopFolder", pkg.Directories[1].ID)
	assert.Equal(t, "ProgramMenuFolder", pkg.Directories[2].ID)

	root := pkg.Directories[0].Directory
	require.NotNil(t, root)
	assert.Equal(t, "INSTALLDIR", root.ID)
	assert.Equal(t, "LotCom Watcher", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "runtimes", root.Children[0].Name)
	assert.Equal(t, "win-x64", root.Children[0].Children[0].Name)
	assert.Equal(t, "native", root.Children[0].Children[0].Children[0].Name)

	assert.Equal(t, `C:\ProgramData\Yamada North America\LotCom Watcher`, pkg.SetDirectory.Value)

	require.Len(t, pkg.ComponentGroup.Components, 3)
	var exe *wixFile
	for i := range pkg.ComponentGroup.Components {
		c := &pkg.ComponentGroup.Components[i]
		if c.File.Name == "LotComWatcher.exe" {
			exe = &c.File
			assert.Equal(t, "INSTALLDIR", c.Directory)
		} else {
			assert.Empty(t, c.File.Shortcuts)
		}
	}
	require.NotNil(t, exe)
	assert.Equal(t, "/release/LotComWatcher.exe", exe.Source)
	require.Len(t, exe.Shortcuts, 2)
	assert.Equal(t, "ProgramMenuFolder", exe.Shortcuts[0].Directory)
	assert.Equal(t, "DesktopFolder", exe.Shortcuts[1].Directory)
	assert.Equal(t, "LotCom Watcher", exe.Shortcuts[0].Name)
	assert.NotEqual(t, exe.Shortcuts[0].ID, exe.Shortcuts[1].ID)
}

func TestRenderSource_Deterministic(t *testing.T) {
	d := buildDescriptor(t, t.TempDir())

	first, err := RenderSource(d)
	require.NoError(t, err)
	second, err := RenderSource(d)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRenderSource_RejectsPartialDescriptor(t *testing.T) {
	_, err := RenderSource(&setup.Descriptor{Name: "x"})
	assert.ErrorIs(t, err, setup.ErrInvalidDescriptor)
}

func TestRenderSource_RejectsCaseOnlyDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{"sibling files", "appSettings.json"},
		{"directories", "Runtimes/win-x64/native/other.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildDescriptor(t, t.TempDir())
			d.FileSet.Files = append(d.FileSet.Files, setup.FileRecord{
				Path:         "/release/" + tt.extra,
				RelativePath: tt.extra,
				Name:         path.Base(tt.extra),
			})

			_, err := RenderSource(d)
			require.Error(t, err)
			assert.ErrorIs(t, err, setup.ErrInvalidDescriptor)
			assert.Contains(t, err.Error(), "differ only in case")
		})
	}
}

func TestIDFor_DistinctPaths(t *testing.T) {
	assert.Equal(t, idFor("fil", "Runtimes/a.dll"), idFor("fil", "runtimes/A.dll"))
	assert.NotEqual(t, idFor("fil", "runtimes/a.dll"), idFor("fil", "runtimes/b.dll"))
	assert.NotEqual(t, idFor("fil", "a.dll"), idFor("dir", "a.dll"))
}

func TestRenderSource_UnknownShortcutLocation(t *testing.T) {
	d := buildDescriptor(t, t.TempDir())
	for i := range d.FileSet.Files {
		if d.FileSet.Files[i].Name == "LotComWatcher.exe" {
			d.FileSet.Files[i].Shortcuts[0].Location = "%Nowhere%"
		}
	}

	_, err := RenderSource(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, setup.ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), "%Nowhere%")
}

func TestCompile_RunsEngineWithExplicitEnvironment(t *testing.T) {
	out := t.TempDir()
	d := buildDescriptor(t, out)
	runner := &fakeRunner{}

	c := NewCompiler(Options{
		Executable: "wix",
		Extensions: []string{"WixToolset.Util.wixext"},
		Args:       []string{"-arch", "x64"},
		Runner:     runner,
		Logger:     logging.NewNullLogger(),
	})

	art, err := c.Compile(context.Background(), d)
	require.NoError(t, err)

	base := filepath.Join(out, "LotComWatcher_1.2.3")
	assert.Equal(t, base+".wxs", art.SourcePath)
	assert.Equal(t, base+".msi", art.InstallerPath)

	require.Len(t, runner.runs, 1)
	run := runner.runs[0]
	assert.Equal(t, "wix", run.name)
	assert.Equal(t, "/release", run.dir)
	assert.Equal(t, []string{"LATEST_RELEASE=1.2.3"}, run.env)
	assert.Equal(t, []string{
		"build", "-o", base + ".msi",
		"-ext", "WixToolset.Util.wixext",
		"-arch", "x64",
		base + ".wxs",
	}, run.args)

	_, present := os.LookupEnv("LATEST_RELEASE")
	assert.False(t, present, "process environment must not be mutated")
}

func TestCompile_WritesCompanionFiles(t *testing.T) {
	out := t.TempDir()
	d := buildDescriptor(t, out)

	c := NewCompiler(Options{EmitOnly: true, Runner: &fakeRunner{}, Logger: logging.NewNullLogger()})
	art, err := c.Compile(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, art.InstallerPath)

	env, err := godotenv.Read(art.EnvPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"LATEST_RELEASE": "1.2.3"}, env)

	data, err := os.ReadFile(art.ManifestPath)
	require.NoError(t, err)
	var manifest map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &manifest))
	assert.Equal(t, "7c944604-45fd-8922-30e8-91abb9c16a16", manifest["product_id"])
	assert.Equal(t, "b8922687-a74a-45d4-96aa-17c91224db7a", manifest["upgrade_code"])
	assert.Equal(t, "1.2.3", manifest["version"])

	src, err := os.ReadFile(art.SourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(src), "<Wix")
}

func TestCompile_EmitOnlySkipsEngine(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCompiler(Options{EmitOnly: true, Runner: runner, Logger: logging.NewNullLogger()})

	_, err := c.Compile(context.Background(), buildDescriptor(t, t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, runner.runs)
}

func TestCompile_EngineFailure(t *testing.T) {
	runner := &fakeRunner{output: []byte("WIX0103: cannot find file"), err: errors.New("exit status 1")}
	c := NewCompiler(Options{Runner: runner, Logger: logging.NewNullLogger()})

	art, err := c.Compile(context.Background(), buildDescriptor(t, t.TempDir()))
	require.Error(t, err)
	assert.ErrorIs(t, err, setup.ErrCompilationFailed)
	assert.Contains(t, err.Error(), "WIX0103")
	assert.Empty(t, art.InstallerPath)
	assert.FileExists(t, art.SourcePath)
}

func TestNewCompiler_Defaults(t *testing.T) {
	c := NewCompiler(Options{Logger: logging.NewNullLogger()})
	assert.Equal(t, "wix", c.opts.Executable)
	assert.IsType(t, ExecRunner{}, c.opts.Runner)

	assert.Panics(t, func() { NewCompiler(Options{}) })
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "LotCom Watcher", lastSegment(`C:\ProgramData\Yamada North America\LotCom Watcher`))
	assert.Equal(t, "app", lastSegment("/opt/app/"))
	assert.Equal(t, "plain", lastSegment("plain"))
}
