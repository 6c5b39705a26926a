package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureFs(t *testing.T, files ...string) afero.Fs {
	fs := afero.NewMemMapFs()
	for _, file := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("data", file), []byte(file), 0644))
	}
	return fs
}

func TestFixtures_Resolve(t *testing.T) {
	fs := fixtureFs(t,
		"listing_0043_immediate_movs",
		"listing_0043_immediate_movs.asm",
		"listing_0043_immediate_movs.txt",
		"listing_0044_register_movs",
		"listing_0044_register_movs.asm",
	)
	fixtures := NewFixtures(fs, "data")

	set, err := fixtures.Resolve(43)
	require.NoError(t, err)
	assert.Equal(t, FixtureSet{
		DecodeReference: filepath.Join("data", "listing_0043_immediate_movs.asm"),
		ExecReference:   filepath.Join("data", "listing_0043_immediate_movs.txt"),
		Object:          filepath.Join("data", "listing_0043_immediate_movs"),
	}, set)

	decode, err := fixtures.ResolveDecodeReference(44)
	require.NoError(t, err)
	assert.Equal(t, Fixture{
		Reference: filepath.Join("data", "listing_0044_register_movs.asm"),
		Object:    filepath.Join("data", "listing_0044_register_movs"),
	}, decode)

	exec, err := fixtures.ResolveExecReference(43)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "listing_0043_immediate_movs.txt"), exec.Reference)
}

func TestFixtures_Resolve_Missing(t *testing.T) {
	fs := fixtureFs(t,
		"listing_0044_register_movs",
		"listing_0044_register_movs.asm",
		"listing_0038_many_register_mov.asm",
	)
	fixtures := NewFixtures(fs, "data")

	t.Run("missing exec reference", func(t *testing.T) {
		_, err := fixtures.ResolveExecReference(44)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnresolvedFixture)

		var unresolved *UnresolvedFixtureError
		require.True(t, errors.As(err, &unresolved))
		assert.Equal(t, KindExecReference, unresolved.Kind)
		assert.Equal(t, 44, unresolved.ID)
		assert.Empty(t, unresolved.Candidates)
	})

	t.Run("full set requires every kind", func(t *testing.T) {
		_, err := fixtures.Resolve(44)
		assert.ErrorIs(t, err, ErrUnresolvedFixture)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := fixtures.ResolveDecodeReference(38)

		var unresolved *UnresolvedFixtureError
		require.True(t, errors.As(err, &unresolved))
		assert.Equal(t, KindObject, unresolved.Kind)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := fixtures.ResolveDecodeReference(99)
		assert.ErrorIs(t, err, ErrUnresolvedFixture)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewFixtures(fs, "nowhere").ResolveDecodeReference(44)
		assert.ErrorIs(t, err, ErrUnresolvedFixture)
		assert.Contains(t, err.Error(), "nowhere")
	})
}

func TestFixtures_Resolve_Ambiguous(t *testing.T) {
	// "5" is a substring of both listing names
	fs := fixtureFs(t,
		"listing_0005_a",
		"listing_0005_a.asm",
		"listing_0015_b",
		"listing_0015_b.asm",
	)
	fixtures := NewFixtures(fs, "data")

	_, err := fixtures.ResolveDecodeReference(5)
	require.Error(t, err)

	var unresolved *UnresolvedFixtureError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, KindDecodeReference, unresolved.Kind)
	assert.Equal(t, []string{
		filepath.Join("data", "listing_0005_a.asm"),
		filepath.Join("data", "listing_0015_b.asm"),
	}, unresolved.Candidates)
	assert.Contains(t, err.Error(), "2 decode reference files for test 5")

	// The longer identifier is unambiguous
	fixture, err := fixtures.ResolveDecodeReference(15)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "listing_0015_b"), fixture.Object)
}

func TestFixtures_IgnoresDirectoriesAndOtherFiles(t *testing.T) {
	fs := fixtureFs(t,
		"listing_0037_single_register_mov",
		"listing_0037_single_register_mov.asm",
		"listing_0037_single_register_mov.bak",
	)
	require.NoError(t, fs.MkdirAll(filepath.Join("data", "old_0037"), 0755))

	fixture, err := NewFixtures(fs, "data").ResolveDecodeReference(37)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "listing_0037_single_register_mov"), fixture.Object)
}

func TestFixtures_ReadFile(t *testing.T) {
	fs := fixtureFs(t, "listing_0037_single_register_mov.asm")
	fixtures := NewFixtures(fs, "")

	assert.Equal(t, DefaultDir, fixtures.Dir())

	contents, err := fixtures.ReadFile(filepath.Join("data", "listing_0037_single_register_mov.asm"))
	require.NoError(t, err)
	assert.Equal(t, "listing_0037_single_register_mov.asm", contents)

	_, err = fixtures.ReadFile("data/missing.asm")
	assert.Error(t, err)
}
