package scaffold

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tinalabs/tina/internal/layout"
)

func yes(string) bool { return true }

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := `{"name": "demo", "scripts": {"start": "next start"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newScaffolder(t *testing.T, dir string, confirm ConfirmFunc) (*Scaffolder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(layout.Detect(dir), &out, confirm), &out
}

// snapshot maps every file under dir to its contents.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}

func TestRun_FreshProject(t *testing.T) {
	dir := newProject(t)
	s, _ := newScaffolder(t, dir, yes)

	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, rel := range []string{
		filepath.Join("content", "posts", "hello-world.md"),
		filepath.Join(".tina", "schema.yaml"),
		filepath.Join(".tina", "components", "TinaProvider.js"),
		filepath.Join(".tina", "components", "TinaDynamicProvider.js"),
		filepath.Join("pages", "_app.js"),
		filepath.Join("pages", "demo", "blog", "[filename].js"),
		filepath.Join("pages", "admin.js"),
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"start": "next start"`, `"tina-dev"`, `"tina-build"`, `"tina-gen"`} {
		if !strings.Contains(string(manifest), want) {
			t.Errorf("package.json missing %s:\n%s", want, manifest)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir := newProject(t)

	s, _ := newScaffolder(t, dir, yes)
	if err := s.Run(); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	first := snapshot(t, dir)

	// Second run declines the entry-point overwrite prompt.
	declined := false
	s2, _ := newScaffolder(t, dir, func(string) bool {
		declined = true
		return false
	})
	if err := s2.Run(); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if !declined {
		t.Error("second run did not re-trigger the overwrite prompt")
	}
	if second := snapshot(t, dir); !reflect.DeepEqual(first, second) {
		t.Error("second run changed file contents")
	}
}

func TestRun_SrcLayout(t *testing.T) {
	dir := newProject(t)
	if err := os.Mkdir(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatal(err)
	}

	s, _ := newScaffolder(t, dir, yes)
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, rel := range []string{
		filepath.Join("src", "pages", "_app.js"),
		filepath.Join("src", "pages", "admin.js"),
		filepath.Join("src", "pages", "demo", "blog", "[filename].js"),
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "pages")); err == nil {
		t.Error("root pages/ created despite src layout")
	}

	// The generated entry point reaches back out of src/ for the providers.
	app, err := os.ReadFile(filepath.Join(dir, "src", "pages", "_app.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(app), "'../../.tina/components/TinaDynamicProvider'") {
		t.Errorf("entry point has wrong provider import:\n%s", app)
	}
}

func TestRun_MissingManifestFails(t *testing.T) {
	dir := t.TempDir() // no package.json

	s, _ := newScaffolder(t, dir, yes)
	if err := s.Run(); err == nil {
		t.Fatal("expected error for missing package.json")
	}
}

func TestEnsureSampleContent_SkipsExisting(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	if err := os.MkdirAll(l.ContentDir, 0755); err != nil {
		t.Fatal(err)
	}
	custom := "my own post"
	if err := os.WriteFile(l.SamplePost, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(l.ContentDir, "second.md")
	if err := os.WriteFile(other, []byte("untouched"), 0644); err != nil {
		t.Fatal(err)
	}

	s, out := newScaffolder(t, dir, yes)
	if err := s.EnsureSampleContent(); err != nil {
		t.Fatalf("EnsureSampleContent failed: %v", err)
	}

	got, _ := os.ReadFile(l.SamplePost)
	if string(got) != custom {
		t.Error("existing sample post was modified")
	}
	if data, _ := os.ReadFile(other); string(data) != "untouched" {
		t.Error("sibling content file was modified")
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("expected skip message, got:\n%s", out.String())
	}
}

func TestEnsureProviderComponents_SkipsWhenEitherExists(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	if err := os.MkdirAll(l.ComponentsDir, 0755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(l.ComponentsDir, "TinaDynamicProvider.js")
	if err := os.WriteFile(existing, []byte("custom provider"), 0644); err != nil {
		t.Fatal(err)
	}

	s, _ := newScaffolder(t, dir, yes)
	if err := s.EnsureProviderComponents(); err != nil {
		t.Fatalf("EnsureProviderComponents failed: %v", err)
	}

	if data, _ := os.ReadFile(existing); string(data) != "custom provider" {
		t.Error("existing provider was overwritten")
	}
	if _, err := os.Stat(filepath.Join(l.ComponentsDir, "TinaProvider.js")); err == nil {
		t.Error("sibling provider written despite existing variant")
	}
}

func TestEnsureProviderComponents_WriteOrder(t *testing.T) {
	dir := newProject(t)

	s, out := newScaffolder(t, dir, yes)
	if err := s.EnsureProviderComponents(); err != nil {
		t.Fatalf("EnsureProviderComponents failed: %v", err)
	}

	static := strings.Index(out.String(), "TinaProvider.js")
	dynamic := strings.Index(out.String(), "TinaDynamicProvider.js")
	if static < 0 || dynamic < 0 {
		t.Fatalf("missing provider output:\n%s", out.String())
	}
	if static > dynamic {
		t.Errorf("TinaProvider.js reported after TinaDynamicProvider.js:\n%s", out.String())
	}
}

func TestExtractStyleImports(t *testing.T) {
	src := `import '../styles/globals.css'
import React from 'react'
import styles from "./app.css";
import notCss from './theme'
  import './indented.css'
const x = "import 'fake.css'"
`
	got := ExtractStyleImports(src)
	want := []string{
		`import '../styles/globals.css'`,
		`import styles from "./app.css";`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractStyleImports = %q, want %q", got, want)
	}
}

func TestEnsureAppEntry_OverwriteKeepsStyleImports(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	existing := `import '../styles/globals.css'
import "../styles/theme.css";
import App from 'next/app'

export default App
`
	if err := os.MkdirAll(l.PagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.AppTSX, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	s, _ := newScaffolder(t, dir, func(string) bool { return true })
	if err := s.EnsureAppEntry(); err != nil {
		t.Fatalf("EnsureAppEntry failed: %v", err)
	}

	// Same extension as what existed, no stray .js sibling.
	if _, err := os.Stat(l.AppJS); err == nil {
		t.Error("_app.js written even though _app.tsx existed")
	}

	data, err := os.ReadFile(l.AppTSX)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	cssA := strings.Index(content, `import '../styles/globals.css'`)
	cssB := strings.Index(content, `import "../styles/theme.css";`)
	if cssA == -1 || cssB == -1 {
		t.Fatalf("style imports not carried over:\n%s", content)
	}
	if cssA > cssB {
		t.Error("style import order not preserved")
	}
	if !strings.Contains(content, "TinaDynamicProvider") {
		t.Errorf("regenerated entry point missing provider:\n%s", content)
	}
	if strings.Contains(content, "next/app") {
		t.Errorf("old body survived regeneration:\n%s", content)
	}
}

func TestEnsureAppEntry_DeclineLeavesFileUntouched(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	existing := "my app, hands off\n"
	if err := os.MkdirAll(l.PagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.AppJS, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	s, out := newScaffolder(t, dir, func(string) bool { return false })
	if err := s.EnsureAppEntry(); err != nil {
		t.Fatalf("EnsureAppEntry failed: %v", err)
	}

	if data, _ := os.ReadFile(l.AppJS); string(data) != existing {
		t.Error("declined overwrite still modified the file")
	}
	if !strings.Contains(out.String(), "TinaDynamicProvider") {
		t.Errorf("expected manual wiring instructions, got:\n%s", out.String())
	}
}

func TestEnsureAdminPage_DirectoryCollisionSkips(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	if err := os.MkdirAll(l.AdminDir, 0755); err != nil {
		t.Fatal(err)
	}

	s, out := newScaffolder(t, dir, yes)
	if err := s.EnsureAdminPage(); err != nil {
		t.Fatalf("EnsureAdminPage failed: %v", err)
	}

	if _, err := os.Stat(l.AdminFile); err == nil {
		t.Error("admin.js written despite directory collision")
	}
	if !strings.Contains(out.String(), "exists as a directory") {
		t.Errorf("expected collision warning, got:\n%s", out.String())
	}
}

// A pre-existing admin *file* is overwritten without any prompt: only the
// directory collision is guarded. Intentional asymmetry.
func TestEnsureAdminPage_OverwritesExistingFile(t *testing.T) {
	dir := newProject(t)
	l := layout.Detect(dir)

	if err := os.MkdirAll(l.PagesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.AdminFile, []byte("user admin page"), 0644); err != nil {
		t.Fatal(err)
	}

	s, _ := newScaffolder(t, dir, yes)
	if err := s.EnsureAdminPage(); err != nil {
		t.Fatalf("EnsureAdminPage failed: %v", err)
	}

	data, err := os.ReadFile(l.AdminFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "user admin page" {
		t.Error("existing admin.js was preserved; the unguarded overwrite is expected behavior")
	}
}

func TestScriptEntries(t *testing.T) {
	entries := ScriptEntries()
	for _, name := range []string{"tina-dev", "tina-build", "tina-gen"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing script entry %s", name)
		}
	}
}
