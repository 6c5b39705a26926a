package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Flags(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected []string
	}{
		{"decode", DecodeProfile(), []string{}},
		{"execute", Profile{Mode: ModeExecute}, []string{"--execute"}},
		{"execute with ip", Profile{Mode: ModeExecute, ShowInstructionPointer: true}, []string{"--execute", "--show-ip"}},
		{
			"execute with ip and estimates",
			Profile{Mode: ModeExecute, ShowInstructionPointer: true, ShowCycleEstimates: true},
			[]string{"--execute", "--show-ip", "--show-estimates"},
		},
		{
			"everything",
			Profile{Mode: ModeExecute, ShowInstructionPointer: true, ShowCycleEstimates: true, DumpMemoryPath: "mem.data", KeepComments: true},
			[]string{"--execute", "--show-ip", "--show-estimates", "--dump-memory", "mem.data"},
		},
		{
			"estimates without ip keep their slot",
			Profile{Mode: ModeExecute, ShowCycleEstimates: true},
			[]string{"--execute", "--show-estimates"},
		},
		{"comments do not reach the simulator", Profile{KeepComments: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.profile.Flags())
			// Same profile, same flags
			assert.Equal(t, tt.profile.Flags(), tt.profile.Flags())
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"decode", ModeDecode},
		{"", ModeDecode},
		{"execute", ModeExecute},
		{"EXEC", ModeExecute},
		{" emulate ", ModeExecute},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	_, err := ParseMode("assemble")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assemble")
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "decode", ModeDecode.String())
	assert.Equal(t, "execute", ModeExecute.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestProfile_String(t *testing.T) {
	assert.Equal(t, "decode", DecodeProfile().String())
	assert.Equal(t, "execute+ip+estimates+comments",
		Profile{Mode: ModeExecute, ShowInstructionPointer: true, ShowCycleEstimates: true, KeepComments: true}.String())
	assert.Equal(t, "execute+dump=out.bin", Profile{Mode: ModeExecute, DumpMemoryPath: "out.bin"}.String())
}
