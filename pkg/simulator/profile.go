package simulator

import (
	"fmt"
	"strings"
)

// Mode selects what the simulator does with an object file
type Mode int

const (
	// ModeDecode only disassembles the object file
	ModeDecode Mode = iota
	// ModeExecute runs the object file and prints an execution trace
	ModeExecute
)

// String returns the name used for the mode in catalog files and logs
func (m Mode) String() string {
	switch m {
	case ModeDecode:
		return "decode"
	case ModeExecute:
		return "execute"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the mode named by s ("decode" or "execute")
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decode", "":
		return ModeDecode, nil
	case "execute", "exec", "emulate":
		return ModeExecute, nil
	default:
		return ModeDecode, fmt.Errorf("unknown simulator mode '%s'", s)
	}
}

// Simulator command line flags. This is the only place where flag spellings live.
const (
	FlagExecute       = "--execute"
	FlagShowIP        = "--show-ip"
	FlagShowEstimates = "--show-estimates"
	FlagDumpMemory    = "--dump-memory"
)

// Profile describes how the simulator is invoked for a test and how the reference
// text is normalized before comparison. Profiles are plain values; copy them freely.
type Profile struct {
	// Mode selects decode or execute
	Mode Mode

	// ShowInstructionPointer includes the instruction pointer trace in the output
	ShowInstructionPointer bool

	// ShowCycleEstimates includes cycle estimate annotations in the output
	ShowCycleEstimates bool

	// DumpMemoryPath, if not empty, makes the simulator write its final memory there
	DumpMemoryPath string

	// KeepComments keeps reference comments after the comment marker
	KeepComments bool
}

// DecodeProfile returns the profile used to verify decoding: decode mode, no extra flags,
// comments stripped from the reference
func DecodeProfile() Profile {
	return Profile{Mode: ModeDecode}
}

// Flags returns the simulator flags for this profile, always in the same order:
// mode, instruction pointer, cycle estimates, memory dump
func (p Profile) Flags() []string {
	flags := []string{}

	if p.Mode == ModeExecute {
		flags = append(flags, FlagExecute)
	}
	if p.ShowInstructionPointer {
		flags = append(flags, FlagShowIP)
	}
	if p.ShowCycleEstimates {
		flags = append(flags, FlagShowEstimates)
	}
	if p.DumpMemoryPath != "" {
		flags = append(flags, FlagDumpMemory, p.DumpMemoryPath)
	}

	return flags
}

// String returns a short human readable description of the profile
func (p Profile) String() string {
	parts := []string{p.Mode.String()}

	if p.ShowInstructionPointer {
		parts = append(parts, "ip")
	}
	if p.ShowCycleEstimates {
		parts = append(parts, "estimates")
	}
	if p.DumpMemoryPath != "" {
		parts = append(parts, "dump="+p.DumpMemoryPath)
	}
	if p.KeepComments {
		parts = append(parts, "comments")
	}

	return strings.Join(parts, "+")
}
