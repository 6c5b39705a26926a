package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is returned for test identifiers that belong to no partition and
	// for malformed catalogs
	ErrConfiguration = errors.New("configuration error")

	// ErrUnresolvedFixture is returned when a required fixture file is missing or ambiguous
	ErrUnresolvedFixture = errors.New("unresolved fixture")
)

// FixtureKind identifies the role of a fixture file
type FixtureKind int

const (
	// KindDecodeReference is the reference disassembly listing (.asm)
	KindDecodeReference FixtureKind = iota
	// KindExecReference is the reference execution trace (.txt)
	KindExecReference
	// KindObject is the raw object file fed to the simulator (no extension)
	KindObject
)

func (k FixtureKind) String() string {
	switch k {
	case KindDecodeReference:
		return "decode reference"
	case KindExecReference:
		return "exec reference"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("FixtureKind(%d)", int(k))
	}
}

// UnresolvedFixtureError reports that a fixture kind matched zero or several files
type UnresolvedFixtureError struct {
	ID         int
	Kind       FixtureKind
	Dir        string
	Candidates []string
}

func (e *UnresolvedFixtureError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v: no %s file for test %d in '%s'", ErrUnresolvedFixture, e.Kind, e.ID, e.Dir)
	}

	return fmt.Sprintf("%v: %d %s files for test %d in '%s' (%s)",
		ErrUnresolvedFixture, len(e.Candidates), e.Kind, e.ID, e.Dir, strings.Join(e.Candidates, ", "))
}

func (e *UnresolvedFixtureError) Unwrap() error {
	return ErrUnresolvedFixture
}
