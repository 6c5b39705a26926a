// Package catalog knows which tests exist, how each one is run, and where its fixture
// files are.
//
// A Catalog is an ordered list of partitions. Each partition groups test identifiers
// sharing one simulator profile. The order matters twice: it is the order of a full
// run, and it is the lookup order for a single identifier.
package catalog

import (
	"github.com/Manu343726/simcheck/pkg/simulator"
	"github.com/Manu343726/simcheck/pkg/utils"
	"golang.org/x/exp/slices"
)

// Partition is a named group of tests run with the same profile
type Partition struct {
	Name    string
	Profile simulator.Profile
	Tests   []int
}

// VerifiesDecode reports whether tests in this partition check decoding before anything
// else. Every execute partition re-verifies decoding of the same object file.
func (p Partition) VerifiesDecode() bool {
	return p.Profile.Mode == simulator.ModeExecute
}

// Contains reports whether the test belongs to this partition
func (p Partition) Contains(id int) bool {
	return slices.Contains(p.Tests, id)
}

// Catalog is an immutable ordered list of partitions
type Catalog struct {
	partitions []Partition
}

// NewCatalog validates and copies the given partitions. Partitions need a unique non
// empty name and a test can only belong to one partition.
func NewCatalog(partitions ...Partition) (*Catalog, error) {
	owners := map[int]string{}
	names := map[string]bool{}
	copied := make([]Partition, 0, len(partitions))

	for _, partition := range partitions {
		if partition.Name == "" {
			return nil, utils.MakeError(ErrConfiguration, "partition without a name")
		}
		if names[partition.Name] {
			return nil, utils.MakeError(ErrConfiguration, "duplicated partition '%s'", partition.Name)
		}
		names[partition.Name] = true

		for _, id := range partition.Tests {
			if owner, found := owners[id]; found {
				if owner == partition.Name {
					return nil, utils.MakeError(ErrConfiguration, "test %d listed twice in partition '%s'", id, owner)
				}
				return nil, utils.MakeError(ErrConfiguration, "test %d belongs to both '%s' and '%s'", id, owner, partition.Name)
			}
			owners[id] = partition.Name
		}

		partition.Tests = slices.Clone(partition.Tests)
		copied = append(copied, partition)
	}

	return &Catalog{partitions: copied}, nil
}

// Default returns the built in catalog of the sim8086 listings
func Default() *Catalog {
	catalog, err := NewCatalog(
		Partition{
			Name:    "decode",
			Profile: simulator.DecodeProfile(),
			Tests:   []int{37, 38, 39, 40, 41},
		},
		Partition{
			Name:    "execute",
			Profile: simulator.Profile{Mode: simulator.ModeExecute, KeepComments: true},
			Tests:   []int{43, 44, 46},
		},
		Partition{
			Name:    "execute-ip",
			Profile: simulator.Profile{Mode: simulator.ModeExecute, ShowInstructionPointer: true, KeepComments: true},
			Tests:   []int{48, 49, 51, 52, 53, 54, 55},
		},
		Partition{
			Name: "execute-estimates",
			Profile: simulator.Profile{
				Mode:                   simulator.ModeExecute,
				ShowInstructionPointer: true,
				ShowCycleEstimates:     true,
				KeepComments:           true,
			},
			Tests: []int{56, 57},
		},
	)
	if err != nil {
		panic(err)
	}

	return catalog
}

// Partitions returns a copy of the partitions in declaration order
func (c *Catalog) Partitions() []Partition {
	return utils.Map(c.partitions, func(p Partition) Partition {
		p.Tests = slices.Clone(p.Tests)
		return p
	})
}

// Lookup returns the first partition, in declaration order, containing the test
func (c *Catalog) Lookup(id int) (Partition, error) {
	for _, partition := range c.partitions {
		if partition.Contains(id) {
			return partition, nil
		}
	}

	return Partition{}, utils.MakeError(ErrConfiguration, "unknown test %d", id)
}

// Tests returns every test identifier in run order
func (c *Catalog) Tests() []int {
	ids := []int{}

	for _, partition := range c.partitions {
		ids = append(ids, partition.Tests...)
	}

	return ids
}
