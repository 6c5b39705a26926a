package catalog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/Manu343726/simcheck/pkg/utils"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is the on disk representation of a catalog
type File struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is the on disk representation of a partition
type CategoryConfig struct {
	Name          string `yaml:"name"`
	Mode          string `yaml:"mode"`
	ShowIP        bool   `yaml:"show_ip,omitempty"`
	ShowEstimates bool   `yaml:"show_estimates,omitempty"`
	DumpMemory    string `yaml:"dump_memory,omitempty"`
	KeepComments  bool   `yaml:"keep_comments,omitempty"`
	Tests         []int  `yaml:"tests,flow"`
}

// Partition converts the category into a partition
func (c CategoryConfig) Partition() (Partition, error) {
	mode, err := simulator.ParseMode(c.Mode)
	if err != nil {
		return Partition{}, utils.MakeError(ErrConfiguration, "category '%s': %v", c.Name, err)
	}

	return Partition{
		Name: c.Name,
		Profile: simulator.Profile{
			Mode:                   mode,
			ShowInstructionPointer: c.ShowIP,
			ShowCycleEstimates:     c.ShowEstimates,
			DumpMemoryPath:         c.DumpMemory,
			KeepComments:           c.KeepComments,
		},
		Tests: c.Tests,
	}, nil
}

// Parse reads a catalog in YAML format
func Parse(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, utils.MakeError(ErrConfiguration, "empty catalog")
		}
		return nil, utils.MakeError(ErrConfiguration, "malformed catalog: %v", err)
	}

	if len(file.Categories) == 0 {
		return nil, utils.MakeError(ErrConfiguration, "catalog has no categories")
	}

	partitions := make([]Partition, 0, len(file.Categories))
	for _, category := range file.Categories {
		partition, err := category.Partition()
		if err != nil {
			return nil, err
		}
		partitions = append(partitions, partition)
	}

	return NewCatalog(partitions...)
}

// Load reads a catalog file
func Load(fs afero.Fs, path string) (*Catalog, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, utils.MakeError(ErrConfiguration, "cannot read catalog '%s': %v", path, err)
	}

	catalog, err := Parse(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return catalog, nil
}

// File returns the on disk representation of the catalog
func (c *Catalog) File() File {
	return File{
		Categories: utils.Map(c.partitions, func(p Partition) CategoryConfig {
			return CategoryConfig{
				Name:          p.Name,
				Mode:          p.Profile.Mode.String(),
				ShowIP:        p.Profile.ShowInstructionPointer,
				ShowEstimates: p.Profile.ShowCycleEstimates,
				DumpMemory:    p.Profile.DumpMemoryPath,
				KeepComments:  p.Profile.KeepComments,
				Tests:         append([]int{}, p.Tests...),
			}
		}),
	}
}

// Marshal returns the catalog in YAML format, readable by Parse
func (c *Catalog) Marshal() ([]byte, error) {
	var buffer bytes.Buffer

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)

	if err := encoder.Encode(c.File()); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
