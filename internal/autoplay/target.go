package autoplay

import "github.com/okian/boxshot/internal/domain/types"

// pickTarget aims at the centre of the smallest live square inside the
// viewport. Small squares pay the largest energy reward. Ties go to the
// lowest id.
func pickTarget(snap *types.Snapshot) (types.Point, bool) {
	var best *types.Entity
	for i := range snap.Entities {
		e := &snap.Entities[i]
		if e.Destroyed || !onScreen(snap, e) {
			continue
		}
		if best == nil || e.Size < best.Size || (e.Size == best.Size && e.ID < best.ID) {
			best = e
		}
	}
	if best == nil {
		return types.Point{}, false
	}
	return types.Point{X: best.X + best.Size/2, Y: best.Y + best.Size/2}, true
}

func onScreen(snap *types.Snapshot, e *types.Entity) bool {
	cx, cy := e.X+e.Size/2, e.Y+e.Size/2
	return cx >= 0 && cy >= 0 && cx <= snap.Width && cy <= snap.Height
}

// destroyedIDs lists the destroyed squares in snap.
func destroyedIDs(snap *types.Snapshot) []uint64 {
	var ids []uint64
	for _, e := range snap.Entities {
		if e.Destroyed {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
