package tables

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry is the set of sheets an action may read. It is loaded once at
// genesis and shared read-only afterwards.
type Registry struct {
	MonsterCollection  *MonsterCollectionSheet
	AdventureBoss      *AdventureBossSheet
	WantedReward       *RewardSheet
	ContributionReward *RewardSheet
}

// NewRegistry returns a registry of empty sheets.
func NewRegistry() *Registry {
	return &Registry{
		MonsterCollection:  NewMonsterCollectionSheet(),
		AdventureBoss:      NewAdventureBossSheet(),
		WantedReward:       NewWantedRewardSheet(),
		ContributionReward: NewContributionRewardSheet(),
	}
}

func (r *Registry) sheets() []*Sheet {
	return []*Sheet{
		r.MonsterCollection.Sheet,
		r.AdventureBoss.Sheet,
		r.WantedReward.Sheet,
		r.ContributionReward.Sheet,
	}
}

// LoadRegistry parses sheets from CSV sources keyed by sheet name. Sheets
// absent from srcs stay empty; unknown names are rejected.
func LoadRegistry(srcs map[string]string) (*Registry, error) {
	r := NewRegistry()
	byName := map[string]*Sheet{}
	for _, s := range r.sheets() {
		byName[s.Name()] = s
	}
	for name := range srcs {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("tables: unknown sheet %q", name)
		}
	}
	// fixed order so the first reported error does not depend on map order
	for _, s := range r.sheets() {
		src, ok := srcs[s.Name()]
		if !ok {
			continue
		}
		if err := s.Load(src); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SheetNames lists the sheets a registry holds.
func SheetNames() []string {
	var names []string
	for _, s := range NewRegistry().sheets() {
		names = append(names, s.Name())
	}
	return names
}

// ReadDir reads <dir>/<SheetName>.csv for every known sheet. Missing files
// are skipped.
func ReadDir(dir string) (map[string]string, error) {
	srcs := map[string]string{}
	for _, name := range SheetNames() {
		b, err := os.ReadFile(filepath.Join(dir, name+".csv"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		srcs[name] = string(b)
	}
	return srcs, nil
}

// LoadRegistryDir loads every sheet found in dir.
func LoadRegistryDir(dir string) (*Registry, error) {
	srcs, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return LoadRegistry(srcs)
}
