// Package installer adds the CMS runtime packages to the host project by
// shelling out to its package manager. Subprocess failure is deliberately
// non-fatal: the scaffold is still usable after a manual install, so errors
// degrade to warnings and the pipeline proceeds.
package installer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Packages is the fixed list of libraries the scaffold depends on.
var Packages = []string{"tinacms", "styled-components", "gray-matter"}

// minNodeVersion is the oldest Node release the generated code supports.
const minNodeVersion = "14.0.0"

// Install adds Packages to the project at dir, printing progress to out.
// It resolves successfully regardless of subprocess exit status; a missing
// package manager, an old Node, or a non-zero exit each produce a warning
// and a manual-install hint instead of an error.
func Install(dir string, out io.Writer) {
	fmt.Fprintf(out, "Installing %s...\n", strings.Join(Packages, ", "))

	if warn := checkNode(); warn != "" {
		fmt.Fprintf(out, "  ⚠️  %s\n", warn)
	}

	name, args, warn := command(dir)
	if warn != "" {
		fmt.Fprintf(out, "  ⚠️  %s\n", warn)
		printManualHint(out)
		return
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(out, "  ⚠️  %s %s failed: %v\n", filepath.Base(name), args[0], err)
		printManualHint(out)
		return
	}

	fmt.Fprintf(out, "  [ OK ] Added %d packages\n", len(Packages))
}

// command picks the package manager invocation for the project at dir:
// yarn when a yarn.lock is present and yarn is on PATH, npm otherwise.
// A non-empty warning means no usable tool was found.
func command(dir string) (name string, args []string, warning string) {
	if _, err := os.Stat(filepath.Join(dir, "yarn.lock")); err == nil {
		if yarnPath, err := exec.LookPath("yarn"); err == nil {
			return yarnPath, append([]string{"add"}, Packages...), ""
		}
	}

	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return "", nil, "npm not found — skipping dependency installation"
	}
	return npmPath, append([]string{"install", "--save"}, Packages...), ""
}

// checkNode compares the local Node version against minNodeVersion.
// An empty return means Node is present and new enough.
func checkNode() string {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return "Node.js not found — generated code needs Node " + minNodeVersion + " or newer"
	}

	raw, err := exec.Command(nodeBin, "--version").Output()
	if err != nil {
		return ""
	}

	ok, err := nodeVersionOK(strings.TrimSpace(string(raw)))
	if err != nil || ok {
		return ""
	}
	return fmt.Sprintf("Node %s is older than the supported minimum %s", strings.TrimSpace(string(raw)), minNodeVersion)
}

// nodeVersionOK reports whether raw (e.g. "v18.17.0") satisfies
// minNodeVersion. The leading "v" node prints is tolerated.
func nodeVersionOK(raw string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing node version %q: %w", raw, err)
	}
	min, err := semver.NewVersion(minNodeVersion)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", minNodeVersion, err)
	}
	return v.Compare(min) >= 0, nil
}

func printManualHint(out io.Writer) {
	fmt.Fprintf(out, "  Run `npm install --save %s` manually to finish setup.\n", strings.Join(Packages, " "))
}
