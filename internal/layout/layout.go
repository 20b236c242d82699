// Package layout resolves the conventional file locations of a host project
// into an explicit ProjectLayout value. The layout is computed once at
// startup from the project root and passed into every scaffolding step, so
// no step depends on ambient working-directory state.
package layout

import (
	"os"
	"path/filepath"

	"github.com/tinalabs/tina/internal/branding"
)

// ProjectLayout holds every host-project path the scaffolder touches.
// The zero value is not usable; construct one with Detect.
type ProjectLayout struct {
	Root     string
	UsingSrc bool // true when the project keeps pages under src/

	ContentDir    string // content/posts
	SamplePost    string // content/posts/hello-world.md
	ComponentsDir string // .tina/components
	SchemaFile    string // .tina/schema.yaml
	PagesDir      string // pages or src/pages
	AppJS         string // <pages>/_app.js
	AppTSX        string // <pages>/_app.tsx
	DemoBlogDir   string // <pages>/demo/blog
	DemoBlogFile  string // <pages>/demo/blog/[filename].js
	AdminDir      string // <pages>/admin (collision check only)
	AdminFile     string // <pages>/admin.js
	PackageJSON   string // package.json
}

// Detect builds a ProjectLayout rooted at dir. A src/ directory relocates
// the pages tree to src/pages; content/ and the dot directory always live
// at the project root.
func Detect(dir string) ProjectLayout {
	usingSrc := false
	if info, err := os.Stat(filepath.Join(dir, "src")); err == nil && info.IsDir() {
		usingSrc = true
	}

	pagesDir := filepath.Join(dir, "pages")
	if usingSrc {
		pagesDir = filepath.Join(dir, "src", "pages")
	}

	dotDir := filepath.Join(dir, branding.DotDir())
	contentDir := filepath.Join(dir, "content", "posts")
	demoBlogDir := filepath.Join(pagesDir, "demo", "blog")

	return ProjectLayout{
		Root:          dir,
		UsingSrc:      usingSrc,
		ContentDir:    contentDir,
		SamplePost:    filepath.Join(contentDir, "hello-world.md"),
		ComponentsDir: filepath.Join(dotDir, "components"),
		SchemaFile:    filepath.Join(dotDir, "schema.yaml"),
		PagesDir:      pagesDir,
		AppJS:         filepath.Join(pagesDir, "_app.js"),
		AppTSX:        filepath.Join(pagesDir, "_app.tsx"),
		DemoBlogDir:   demoBlogDir,
		DemoBlogFile:  filepath.Join(demoBlogDir, "[filename].js"),
		AdminDir:      filepath.Join(pagesDir, "admin"),
		AdminFile:     filepath.Join(pagesDir, "admin.js"),
		PackageJSON:   filepath.Join(dir, "package.json"),
	}
}

// Rel returns path relative to the project root, for display. It falls
// back to the absolute path when the two do not share a prefix.
func (l ProjectLayout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return path
	}
	return rel
}
