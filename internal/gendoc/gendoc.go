// Package gendoc drives the libdoc documentation tool: it makes sure a recent
// enough release is installed, upgrading through pip when needed, and builds
// the MAN and SWICD PDFs from the firmware ELF.
package gendoc

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	// DefaultToolVersion is the oldest libdoc release the build is known to
	// work with. Override with the LIBDOC_VERSION environment variable.
	DefaultToolVersion = "0.1.16"

	toolRepo = "git+https://github.com/spaceinventor/libdoc.git"
)

// Generator describes one documentation build.
type Generator struct {
	Hostname string // target name, also used in the output file names
	ELF      string // firmware image the docs are generated from
	Number   string // document number
	OutDir   string
	Python   string
}

func New(hostname string) *Generator {
	return &Generator{
		Hostname: hostname,
		ELF:      fmt.Sprintf("build-0/lib/c21/compile/%s-0.elf", hostname),
		Number:   "001",
		OutDir:   "build-doc",
		Python:   "python3",
	}
}

// RequiredVersion returns the libdoc version to insist on, honouring the
// LIBDOC_VERSION override.
func RequiredVersion() string {
	if v := os.Getenv("LIBDOC_VERSION"); v != "" {
		return v
	}
	return DefaultToolVersion
}

// ToolVersion reports the installed libdoc version.
func (g *Generator) ToolVersion() (string, error) {
	out, err := exec.Command(g.Python, "-m", "libdoc", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("libdoc not runnable: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// VersionOK reports whether the installed version satisfies the wanted one.
// Unparsable versions never satisfy.
func VersionOK(have, want string) bool {
	hv := "v" + strings.TrimPrefix(have, "v")
	wv := "v" + strings.TrimPrefix(want, "v")
	if !semver.IsValid(hv) || !semver.IsValid(wv) {
		return false
	}
	return semver.Compare(hv, wv) >= 0
}

// EnsureTool upgrades libdoc through pip when the installed version is
// missing or too old.
func (g *Generator) EnsureTool(version string) error {
	if have, err := g.ToolVersion(); err == nil && VersionOK(have, version) {
		return nil
	}

	cmd := exec.Command(g.Python, "-m", "pip", "install", "-U", fmt.Sprintf("%s@%s", toolRepo, version))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Printf("[GENDOC] %s", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("upgrading libdoc: %w", err)
	}
	return nil
}

// BuildArgs returns the libdoc invocation for one document type.
func (g *Generator) BuildArgs(docType, docDate, index string) []string {
	out := filepath.Join(g.OutDir, fmt.Sprintf("%s_%s.pdf", g.Hostname, docType))
	return []string{
		"-m", "libdoc",
		"--elf", g.ELF,
		"-d", docDate,
		"-t", docType,
		"-n", g.Number,
		g.Hostname,
		"-o", out,
		index,
	}
}

// Generate builds the MAN and SWICD PDFs, dated docDate (YYYY-MM-DD).
func (g *Generator) Generate(docDate string) error {
	docs := []struct {
		Type  string
		Index string
	}{
		{"MAN", "doc/index_man.rst"},
		{"SWICD", "doc/index_sw.rst"},
	}

	for _, d := range docs {
		cmd := exec.Command(g.Python, g.BuildArgs(d.Type, docDate, d.Index)...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		log.Printf("[GENDOC] %s", strings.Join(cmd.Args, " "))
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("building %s: %w", d.Type, err)
		}
	}
	return nil
}
