package profile

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed profiles/*.cue
var builtinFS embed.FS

// Builtin compiles the embedded profile with the given name.
func Builtin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("profiles/" + name + ".cue")
	if err != nil {
		return nil, fmt.Errorf("unknown builtin profile %q", name)
	}
	return compileSource(data, name+".cue")
}

// Builtins lists the embedded profile names.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".cue"))
	}
	sort.Strings(out)
	return out
}

// Default returns the default embedded profile.
func Default() (*Profile, error) {
	return Builtin("superstars")
}

// LoadFile compiles a single profile document from disk.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return compileSource(data, path)
}

// LoadDir compiles every .cue profile document in a directory. Each file is
// an independent document declaring a top-level "profile" struct; files are
// compiled in name order so errors are reported deterministically.
func LoadDir(dir string) ([]*Profile, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("profiles directory: %w", err)}
	}
	if !info.IsDir() {
		return nil, []error{fmt.Errorf("not a directory: %s", dir)}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.cue"))
	if err != nil {
		return nil, []error{fmt.Errorf("scan profiles directory: %w", err)}
	}
	if len(matches) == 0 {
		return nil, []error{fmt.Errorf("no .cue files found in %s", dir)}
	}
	sort.Strings(matches)

	var (
		profiles []*Profile
		errs     []error
	)
	for _, path := range matches {
		p, err := LoadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, errs
}

func compileSource(data []byte, filename string) (*Profile, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pv := v.LookupPath(cue.ParsePath("profile"))
	if !pv.Exists() {
		return nil, &CompileError{
			Field:   "profile",
			Message: "document does not declare a top-level profile",
			Pos:     v.Pos(),
		}
	}
	return Compile(pv)
}
