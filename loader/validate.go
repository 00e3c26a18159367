package loader

import (
	"fmt"

	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// validate checks cross-references in compiled definitions so the engine
// can assume a well-formed world.
func validate(defs *world.Defs) error {
	if defs.Game.Start == "" {
		return fmt.Errorf("Game block has no start location")
	}
	if _, ok := defs.Locations[defs.Game.Start]; !ok {
		return fmt.Errorf("start location %q is not defined", defs.Game.Start)
	}

	for id, loc := range defs.Locations {
		if loc.Danger < 1 {
			return fmt.Errorf("location %q: danger must be at least 1", id)
		}
		for _, conn := range loc.Connections {
			if _, ok := defs.Locations[conn]; !ok {
				return fmt.Errorf("location %q: connection to undefined location %q", id, conn)
			}
		}
	}

	seen := map[string]bool{}
	for _, q := range defs.Quests {
		if seen[q.ID] {
			return fmt.Errorf("duplicate quest %q", q.ID)
		}
		seen[q.ID] = true
		switch q.Objective.Kind {
		case types.ObjectiveDefeat:
			if q.Objective.Count < 1 {
				return fmt.Errorf("quest %q: defeat objective needs a positive count", q.ID)
			}
		case types.ObjectiveReach:
			if _, ok := defs.Locations[q.Objective.Location]; !ok {
				return fmt.Errorf("quest %q: objective references undefined location %q", q.ID, q.Objective.Location)
			}
		default:
			return fmt.Errorf("quest %q: unknown objective kind %q", q.ID, q.Objective.Kind)
		}
	}

	if len(defs.Spawns) == 0 {
		return fmt.Errorf("no enemy spawns defined")
	}

	return nil
}
