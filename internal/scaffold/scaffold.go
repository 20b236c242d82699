package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/tinalabs/tina/internal/branding"
	"github.com/tinalabs/tina/internal/layout"
	"github.com/tinalabs/tina/internal/manifest"
	"github.com/tinalabs/tina/internal/schema"
	"github.com/tinalabs/tina/internal/ui"
)

//go:embed templates
var templatesFS embed.FS

// styleImportPattern matches top-level stylesheet import lines in the host
// entry point, e.g. `import '../styles/globals.css'` or
// `import styles from "./app.css";`. Regenerating the entry point re-emits
// the matched lines verbatim. This is a best-effort text transform, not a
// parse: imports split across lines or built from expressions are missed.
var styleImportPattern = regexp.MustCompile(`(?m)^import\s+[^;\r\n]*['"][^'"]+\.css['"];?[ \t]*$`)

// ConfirmFunc asks the operator a yes/no question and reports the answer.
type ConfirmFunc func(prompt string) bool

// Scaffolder writes the demo-blog integration into a host project. Every
// step is independently idempotent: a target that already exists is
// skipped, and re-running the whole sequence is safe.
type Scaffolder struct {
	layout  layout.ProjectLayout
	out     io.Writer
	confirm ConfirmFunc
}

// New creates a Scaffolder for the given project layout. confirm is
// consulted before overwriting a pre-existing entry point.
func New(l layout.ProjectLayout, out io.Writer, confirm ConfirmFunc) *Scaffolder {
	return &Scaffolder{layout: l, out: out, confirm: confirm}
}

// Run executes every scaffolding step in order. The first unhandled error
// (filesystem failure, malformed package.json) aborts the sequence; no
// earlier step is rolled back.
func (s *Scaffolder) Run() error {
	steps := []func() error{
		s.EnsureSampleContent,
		s.EnsureSchemaFile,
		s.EnsureProviderComponents,
		s.EnsureAppEntry,
		s.EnsureDemoListing,
		s.UpdateScripts,
		s.EnsureAdminPage,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// EnsureSampleContent writes the fixed sample post unless one exists.
func (s *Scaffolder) EnsureSampleContent() error {
	if s.exists(s.layout.SamplePost) {
		ui.Skip(s.out, "%s already exists", s.layout.Rel(s.layout.SamplePost))
		return nil
	}

	data, err := fs.ReadFile(templatesFS, "templates/hello-world.md")
	if err != nil {
		return fmt.Errorf("reading sample post template: %w", err)
	}
	return s.writeFile(s.layout.SamplePost, data)
}

// EnsureSchemaFile writes the starter schema unless one exists.
func (s *Scaffolder) EnsureSchemaFile() error {
	if s.exists(s.layout.SchemaFile) {
		ui.Skip(s.out, "%s already exists", s.layout.Rel(s.layout.SchemaFile))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.layout.SchemaFile), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.layout.SchemaFile, err)
	}
	if err := schema.Default().Save(s.layout.SchemaFile); err != nil {
		return err
	}
	ui.OK(s.out, "Created %s", s.layout.Rel(s.layout.SchemaFile))
	return nil
}

// EnsureProviderComponents writes both provider variants unless either
// already exists.
func (s *Scaffolder) EnsureProviderComponents() error {
	providerPath := filepath.Join(s.layout.ComponentsDir, "TinaProvider.js")
	dynamicPath := filepath.Join(s.layout.ComponentsDir, "TinaDynamicProvider.js")

	if s.exists(providerPath) || s.exists(dynamicPath) {
		ui.Skip(s.out, "%s already has provider components", s.layout.Rel(s.layout.ComponentsDir))
		return nil
	}

	providers := []struct {
		template string
		path     string
	}{
		{"templates/TinaProvider.js", providerPath},
		{"templates/TinaDynamicProvider.js", dynamicPath},
	}
	for _, p := range providers {
		data, err := fs.ReadFile(templatesFS, p.template)
		if err != nil {
			return fmt.Errorf("reading provider template %s: %w", p.template, err)
		}
		if err := s.writeFile(p.path, data); err != nil {
			return err
		}
	}
	return nil
}

// EnsureAppEntry generates the application entry point. When an entry
// point already exists in either accepted extension, the operator is asked
// before it is overwritten; on confirmation the file's stylesheet imports
// are carried into the regenerated file, on decline it is left untouched
// and manual wiring instructions are printed.
func (s *Scaffolder) EnsureAppEntry() error {
	existing := ""
	switch {
	case s.exists(s.layout.AppTSX):
		existing = s.layout.AppTSX
	case s.exists(s.layout.AppJS):
		existing = s.layout.AppJS
	}

	if existing == "" {
		data, err := s.renderAppEntry(nil)
		if err != nil {
			return err
		}
		return s.writeFile(s.layout.AppJS, data)
	}

	prompt := fmt.Sprintf("Overwrite %s? (y/N) ", s.layout.Rel(existing))
	if !s.confirm(prompt) {
		ui.Skip(s.out, "%s left untouched", s.layout.Rel(existing))
		s.printManualWiring()
		return nil
	}

	src, err := os.ReadFile(existing)
	if err != nil {
		return fmt.Errorf("reading %s: %w", existing, err)
	}

	data, err := s.renderAppEntry(ExtractStyleImports(string(src)))
	if err != nil {
		return err
	}
	return s.writeFile(existing, data)
}

// ExtractStyleImports returns every top-level .css import line in src, in
// source order.
func ExtractStyleImports(src string) []string {
	return styleImportPattern.FindAllString(src, -1)
}

// EnsureDemoListing writes the demo blog listing page unless it exists.
func (s *Scaffolder) EnsureDemoListing() error {
	if s.exists(s.layout.DemoBlogFile) {
		ui.Skip(s.out, "%s already exists", s.layout.Rel(s.layout.DemoBlogFile))
		return nil
	}

	data, err := s.renderTemplate("templates/blog-list.js.tmpl")
	if err != nil {
		return err
	}
	return s.writeFile(s.layout.DemoBlogFile, data)
}

// UpdateScripts merges the CLI's script entries into the host package.json,
// preserving unrecognized entries. A missing or malformed manifest is a
// hard error.
func (s *Scaffolder) UpdateScripts() error {
	doc, err := manifest.Load(s.layout.PackageJSON)
	if err != nil {
		return err
	}

	doc.MergeScripts(ScriptEntries())
	if err := doc.Save(s.layout.PackageJSON); err != nil {
		return err
	}
	ui.OK(s.out, "Updated scripts in %s", s.layout.Rel(s.layout.PackageJSON))
	return nil
}

// ScriptEntries returns the fixed script entries merged into package.json.
func ScriptEntries() map[string]string {
	cli := branding.CLIName()
	return map[string]string{
		cli + "-dev":   cli + ` server:start -c "next dev"`,
		cli + "-build": cli + ` server:start -c "next build"`,
		cli + "-gen":   cli + " schema:gen",
	}
}

// EnsureAdminPage writes the admin toggle page. When the target location
// is occupied by a directory the step is skipped with a warning, because
// no file name can safely be chosen; a pre-existing admin *file* is
// overwritten without a guard.
func (s *Scaffolder) EnsureAdminPage() error {
	if info, err := os.Stat(s.layout.AdminDir); err == nil && info.IsDir() {
		ui.Warn(s.out, "%s exists as a directory — skipping the admin page", s.layout.Rel(s.layout.AdminDir))
		fmt.Fprintf(s.out, "  Add an edit-mode toggle route yourself; see the %s docs.\n", branding.DisplayName())
		return nil
	}

	data, err := fs.ReadFile(templatesFS, "templates/admin.js")
	if err != nil {
		return fmt.Errorf("reading admin template: %w", err)
	}
	return s.writeFile(s.layout.AdminFile, data)
}

// appEntryData holds the template variables for the entry-point file.
type appEntryData struct {
	StyleImports  []string
	ComponentsRel string
	DisplayName   string
}

// componentsRel is the relative import prefix from the pages directory to
// the provider components directory.
func (s *Scaffolder) componentsRel() string {
	if s.layout.UsingSrc {
		return "../../" + branding.DotDir() + "/components"
	}
	return "../" + branding.DotDir() + "/components"
}

func (s *Scaffolder) renderAppEntry(styleImports []string) ([]byte, error) {
	tmplBytes, err := fs.ReadFile(templatesFS, "templates/app.js.tmpl")
	if err != nil {
		return nil, fmt.Errorf("reading entry point template: %w", err)
	}

	tmpl, err := template.New("app.js.tmpl").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing entry point template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, appEntryData{
		StyleImports:  styleImports,
		ComponentsRel: s.componentsRel(),
		DisplayName:   branding.DisplayName(),
	})
	if err != nil {
		return nil, fmt.Errorf("executing entry point template: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Scaffolder) renderTemplate(name string) ([]byte, error) {
	tmplBytes, err := fs.ReadFile(templatesFS, name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(filepath.Base(name)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, appEntryData{
		ComponentsRel: s.componentsRel(),
		DisplayName:   branding.DisplayName(),
	}); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Scaffolder) printManualWiring() {
	fmt.Fprintf(s.out, "  To wire %s up manually, wrap your application in the dynamic provider:\n", branding.DisplayName())
	fmt.Fprintf(s.out, "\n    import { TinaDynamicProvider } from '%s/TinaDynamicProvider'\n", s.componentsRel())
	fmt.Fprintf(s.out, "\n    <TinaDynamicProvider>\n      <Component {...pageProps} />\n    </TinaDynamicProvider>\n\n")
}

// writeFile creates the parent directory and writes data to path.
func (s *Scaffolder) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	ui.OK(s.out, "Created %s", s.layout.Rel(path))
	return nil
}

func (s *Scaffolder) exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
