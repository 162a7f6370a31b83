// Package profctlcfg populates a profctl.Options from environment variables,
// for hosts that want to tune LOD/paging behavior without recompiling.
package profctlcfg

import (
	"github.com/caarlos0/env/v11"

	"github.com/proftrace/profctl"
)

// envOptions mirrors profctl.Options with env tags; caarlos0/env only
// understands its own struct, so we parse into this shape and translate.
type envOptions struct {
	MaxGraphEntries int `env:"PROFCTL_MAX_GRAPH_ENTRIES" envDefault:"2000"`
	TablePageSize   int `env:"PROFCTL_TABLE_PAGE_SIZE" envDefault:"500"`
	MaxChunkEntries int `env:"PROFCTL_MAX_CHUNK_ENTRIES" envDefault:"10000"`
	EventArenaHint  int `env:"PROFCTL_EVENT_ARENA_HINT" envDefault:"4096"`
}

// FromEnviron builds a profctl.Options from the process environment,
// falling back to profctl.DefaultOptions' values for anything unset.
func FromEnviron() (profctl.Options, error) {
	var eo envOptions
	if err := env.Parse(&eo); err != nil {
		return profctl.Options{}, err
	}
	return profctl.Options{
		MaxGraphEntries: eo.MaxGraphEntries,
		TablePageSize:   eo.TablePageSize,
		MaxChunkEntries: eo.MaxChunkEntries,
		EventArenaHint:  eo.EventArenaHint,
	}, nil
}
