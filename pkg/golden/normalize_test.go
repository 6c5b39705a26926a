package golden

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const listing37 = `; ========================================================================
;
; (C) Copyright 2023 by Molly Rocket, Inc., All Rights Reserved.
;
; ========================================================================

; ========================================================================
; LISTING 37
; ========================================================================

bits 16

mov cx, bx
`

const listing43Trace = `--- test\listing_0043_immediate_movs execution ---
mov ax, 1 ; ax:0x0->0x1
mov bx, 2 ; bx:0x0->0x2   

Final registers:
      ax: 0x0001 (1)
      bx: 0x0002 (2)
`

func TestNormalizer_Normalize_Listing(t *testing.T) {
	assert.Equal(t, []string{"mov cx, bx"}, DefaultNormalizer.Normalize(listing37, false))
	assert.Equal(t, []string{"mov cx, bx"}, DefaultNormalizer.Normalize(listing37, true))
}

func TestNormalizer_Normalize_Trace(t *testing.T) {
	t.Run("keep comments", func(t *testing.T) {
		assert.Equal(t, []string{
			"mov ax, 1 ; ax:0x0->0x1",
			"mov bx, 2 ; bx:0x0->0x2",
			"Final registers:",
			"ax: 0x0001 (1)",
			"bx: 0x0002 (2)",
		}, DefaultNormalizer.Normalize(listing43Trace, true))
	})

	t.Run("strip comments", func(t *testing.T) {
		assert.Equal(t, []string{
			"mov ax, 1",
			"mov bx, 2",
			"Final registers:",
			"ax: 0x0001 (1)",
			"bx: 0x0002 (2)",
		}, DefaultNormalizer.Normalize(listing43Trace, false))
	})
}

func TestNormalizer_Normalize_EdgeCases(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		keepComments bool
		expected     []string
	}{
		{"empty", "", false, []string{}},
		{"only blanks", "  \n\t\n\n", false, []string{}},
		{"crlf", "mov ax, bx\r\nmov cx, dx\r\n", false, []string{"mov ax, bx", "mov cx, dx"}},
		{"internal spacing preserved", "mov  ax,   bx  ", false, []string{"mov  ax,   bx"}},
		{"indented comment", "   ; comment\nmov ax, bx", true, []string{"mov ax, bx"}},
		{"indented directive", "   bits 16\nmov ax, bx", false, []string{"mov ax, bx"}},
		{"banner anywhere", "mov ax, bx\n--- end ---\nmov cx, dx", true, []string{"mov ax, bx", "mov cx, dx"}},
		{"first comment marker wins", "mov ax, bx ; one ; two", false, []string{"mov ax, bx"}},
		{"comment kept verbatim", "mov ax, bx ; one ; two", true, []string{"mov ax, bx ; one ; two"}},
		{"order preserved", "c\nb\na", false, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultNormalizer.Normalize(tt.raw, tt.keepComments))
		})
	}
}

func TestNormalizer_Normalize_Idempotent(t *testing.T) {
	inputs := []string{
		listing37,
		listing43Trace,
		"",
		"mov ax, bx ; c\n\n;x\nbits 16\n---\n  add ax, 1  ",
		"a;b\r\nc ; d ; e\r\n",
	}

	for _, input := range inputs {
		for _, keepComments := range []bool{false, true} {
			once := DefaultNormalizer.NormalizeText(input, keepComments)
			twice := DefaultNormalizer.NormalizeText(once, keepComments)
			assert.Equal(t, once, twice, "input %q keepComments=%v", input, keepComments)
		}
	}
}

func TestNormalizer_Normalize_DropsOnlyFilteredLines(t *testing.T) {
	raw := strings.Join([]string{
		"; header",
		"mov ax, bx",
		"bits 16",
		"add ax, 1 ; trailing",
		"--- banner ---",
		"",
		"jmp label",
		"    ;indented",
	}, "\n")

	lines := DefaultNormalizer.Normalize(raw, true)

	assert.Equal(t, []string{"mov ax, bx", "add ax, 1 ; trailing", "jmp label"}, lines)
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, ";"))
		assert.False(t, strings.HasPrefix(line, "bits"))
		assert.False(t, strings.HasPrefix(line, "---"))
		assert.NotEmpty(t, line)
	}
}

func TestNormalizer_CustomMarkers(t *testing.T) {
	n := Normalizer{
		CommentMarker: "#",
		Directives:    []string{".text", ".globl"},
		Banner:        "===",
	}

	raw := "# comment\n.text\n.globl main\n=== section ===\nli a0, 1 # load"

	assert.Equal(t, []string{"li a0, 1"}, n.Normalize(raw, false))
	assert.Equal(t, []string{"li a0, 1 # load"}, n.Normalize(raw, true))
}

func TestNormalizer_NormalizeText(t *testing.T) {
	assert.Equal(t, "mov ax, 1\nmov bx, 2\nFinal registers:\nax: 0x0001 (1)\nbx: 0x0002 (2)",
		DefaultNormalizer.NormalizeText(listing43Trace, false))
}
