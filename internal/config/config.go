// Package config loads the engine's tunable parameters from a TOML file —
// hash table size, search depth cap, and default time-management
// proportions — falling back to built-in defaults when no file is present
// or it fails to parse. Engine correctness never depends on this file
// existing: every field has a sane default.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Engine holds every engine-tunable parameter that the UCI layer's options
// and the CLI entry point read at startup.
type Engine struct {
	HashSizeMB      int
	MaxSearchDepth  int
	MovesProp       int64
	IncProp         int64
	SuddenDeathProp int64
	Name            string
	Author          string
}

// DefaultEngine returns the built-in defaults: a 16 MiB hash table, a search
// depth cap well inside the undo-stack bound, and the corpus-derived
// time-management proportions (remaining/20 + increment/20 with a time
// control in view, remaining/45 + increment/20 in sudden death).
func DefaultEngine() Engine {
	return Engine{
		HashSizeMB:      16,
		MaxSearchDepth:  64,
		MovesProp:       20,
		IncProp:         20,
		SuddenDeathProp: 45,
		Name:            "chesscore",
		Author:          "kvchess",
	}
}

// fileFormat is the on-disk TOML shape; it is kept separate from Engine so
// the file's field names and the in-memory struct's can evolve separately.
type fileFormat struct {
	Hash struct {
		SizeMB int `toml:"size_mb"`
	} `toml:"hash"`
	Search struct {
		MaxDepth int `toml:"max_depth"`
	} `toml:"search"`
	Time struct {
		MovesProp       int64 `toml:"moves_prop"`
		IncProp         int64 `toml:"inc_prop"`
		SuddenDeathProp int64 `toml:"sudden_death_prop"`
	} `toml:"time"`
	Identity struct {
		Name   string `toml:"name"`
		Author string `toml:"author"`
	} `toml:"identity"`
}

// Load reads path and overlays any present fields onto DefaultEngine. A
// missing file is not an error — it simply returns the defaults, matching
// the UCI error-handling policy of never failing engine startup on a
// configuration problem.
func Load(path string) (Engine, error) {
	e := DefaultEngine()
	if path == "" {
		return e, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return e, nil
	}

	var ff fileFormat
	if _, err := toml.DecodeFile(path, &ff); err != nil {
		return e, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if ff.Hash.SizeMB > 0 {
		e.HashSizeMB = ff.Hash.SizeMB
	}
	if ff.Search.MaxDepth > 0 {
		e.MaxSearchDepth = ff.Search.MaxDepth
	}
	if ff.Time.MovesProp > 0 {
		e.MovesProp = ff.Time.MovesProp
	}
	if ff.Time.IncProp > 0 {
		e.IncProp = ff.Time.IncProp
	}
	if ff.Time.SuddenDeathProp > 0 {
		e.SuddenDeathProp = ff.Time.SuddenDeathProp
	}
	if ff.Identity.Name != "" {
		e.Name = ff.Identity.Name
	}
	if ff.Identity.Author != "" {
		e.Author = ff.Identity.Author
	}

	return e, nil
}
