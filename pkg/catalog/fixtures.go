package catalog

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Manu343726/simcheck/pkg/utils"
	"github.com/spf13/afero"
)

// Fixture file suffixes
const (
	DecodeReferenceSuffix = ".asm"
	ExecReferenceSuffix   = ".txt"
)

// DefaultDir is the fixture directory used when none is configured
const DefaultDir = "data"

// FixtureSet contains every fixture file of a test
type FixtureSet struct {
	DecodeReference string
	ExecReference   string
	Object          string
}

// Fixture is the pair of files needed by one comparison: the reference text and the
// object file the simulator runs
type Fixture struct {
	Reference string
	Object    string
}

// Fixtures resolves test identifiers to files in a fixture directory.
//
// A file belongs to a test when its name contains the decimal test identifier. Matching
// is by substring, so short identifiers can match files of other tests ("5" is in
// "listing_0015"). Such collisions are reported as ambiguous fixtures, never resolved
// by guessing.
type Fixtures struct {
	fs  afero.Fs
	dir string
}

// NewFixtures returns a resolver over dir in the given filesystem
func NewFixtures(fs afero.Fs, dir string) *Fixtures {
	if dir == "" {
		dir = DefaultDir
	}

	return &Fixtures{
		fs:  fs,
		dir: dir,
	}
}

// NewOsFixtures returns a read only resolver over dir in the host filesystem
func NewOsFixtures(dir string) *Fixtures {
	return NewFixtures(afero.NewReadOnlyFs(afero.NewOsFs()), dir)
}

// Dir returns the fixture directory
func (f *Fixtures) Dir() string {
	return f.dir
}

// Fs returns the filesystem fixtures are read from
func (f *Fixtures) Fs() afero.Fs {
	return f.fs
}

// ReadFile returns the contents of a resolved fixture file
func (f *Fixtures) ReadFile(path string) (string, error) {
	contents, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", err
	}

	return string(contents), nil
}

// Resolve returns every fixture file of the test. All three kinds are required.
func (f *Fixtures) Resolve(id int) (FixtureSet, error) {
	candidates, err := f.candidates(id)
	if err != nil {
		return FixtureSet{}, err
	}

	var set FixtureSet

	if set.DecodeReference, err = f.pick(id, KindDecodeReference, candidates); err != nil {
		return FixtureSet{}, err
	}
	if set.ExecReference, err = f.pick(id, KindExecReference, candidates); err != nil {
		return FixtureSet{}, err
	}
	if set.Object, err = f.pick(id, KindObject, candidates); err != nil {
		return FixtureSet{}, err
	}

	return set, nil
}

// ResolveDecodeReference returns the reference listing and object file of the test
func (f *Fixtures) ResolveDecodeReference(id int) (Fixture, error) {
	return f.resolveFixture(id, KindDecodeReference)
}

// ResolveExecReference returns the reference execution trace and object file of the test
func (f *Fixtures) ResolveExecReference(id int) (Fixture, error) {
	return f.resolveFixture(id, KindExecReference)
}

func (f *Fixtures) resolveFixture(id int, reference FixtureKind) (Fixture, error) {
	candidates, err := f.candidates(id)
	if err != nil {
		return Fixture{}, err
	}

	var fixture Fixture

	if fixture.Reference, err = f.pick(id, reference, candidates); err != nil {
		return Fixture{}, err
	}
	if fixture.Object, err = f.pick(id, KindObject, candidates); err != nil {
		return Fixture{}, err
	}

	return fixture, nil
}

// candidates returns the paths of the regular files whose name contains the identifier,
// in directory listing order
func (f *Fixtures) candidates(id int) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, f.dir)
	if err != nil {
		return nil, utils.MakeError(ErrUnresolvedFixture, "cannot list fixture directory '%s': %v", f.dir, err)
	}

	key := strconv.Itoa(id)
	paths := []string{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), key) {
			continue
		}

		paths = append(paths, filepath.Join(f.dir, entry.Name()))
	}

	return paths, nil
}

func (f *Fixtures) pick(id int, kind FixtureKind, candidates []string) (string, error) {
	matches := utils.Filter(candidates, func(path string) bool {
		return kindOf(path) == kind
	})

	if len(matches) != 1 {
		return "", &UnresolvedFixtureError{
			ID:         id,
			Kind:       kind,
			Dir:        f.dir,
			Candidates: matches,
		}
	}

	return matches[0], nil
}

// kindOf classifies a fixture file by its suffix. Files with any other extension are
// not fixtures and return -1.
func kindOf(path string) FixtureKind {
	switch filepath.Ext(path) {
	case DecodeReferenceSuffix:
		return KindDecodeReference
	case ExecReferenceSuffix:
		return KindExecReference
	case "":
		return KindObject
	default:
		return -1
	}
}
