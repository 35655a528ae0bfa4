package rules

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

type idSet map[chess.PieceID]struct{}

// sorted returns the members in ascending order, nil when empty.
func (s idSet) sorted() []chess.PieceID {
	if len(s) == 0 {
		return nil
	}
	ids := maps.Keys(s)
	slices.Sort(ids)
	return ids
}

// attackLists is the three-tier attacker bookkeeping for one defending side.
// Invariant: obstructed ⊆ reachable ⊆ candidate.
type attackLists struct {
	candidate  idSet
	reachable  idSet
	obstructed idSet
}

func newAttackLists() *attackLists {
	return &attackLists{candidate: idSet{}, reachable: idSet{}, obstructed: idSet{}}
}

// CheckLists is a sorted snapshot of one side's attacker lists.
type CheckLists struct {
	Candidate  []chess.PieceID
	Reachable  []chess.PieceID
	Obstructed []chess.PieceID
}

// TrackerState is the CheckTracker's lifecycle state.
type TrackerState int

const (
	Active TrackerState = iota
	Checkmated
)

// String returns the string representation of a tracker state.
func (s TrackerState) String() string {
	if s == Checkmated {
		return "checkmated"
	}
	return "active"
}

// CheckTracker maintains, for each side, the enemy pieces that threaten its
// royal piece, and announces checks.
type CheckTracker struct {
	eng *Engine

	// lists and royals are indexed by the defending side.
	lists  [2]*attackLists
	royals [2]chess.PieceID

	state  TrackerState
	buffer []chess.PieceID
}

func newCheckTracker(eng *Engine) *CheckTracker {
	return &CheckTracker{
		eng:   eng,
		lists: [2]*attackLists{newAttackLists(), newAttackLists()},
	}
}

// UpdateCandidateAttackers is called whenever royal relocates. Every
// non-royal enemy piece becomes a candidate, then the reachable and
// obstructed subsets are recomputed against royal's new cell.
func (t *CheckTracker) UpdateCandidateAttackers(royal chess.PieceID) {
	board := t.eng.board
	def := board.SideOf(royal)
	t.royals[def] = royal

	l := t.lists[def]
	l.candidate = idSet{}
	for _, id := range board.Pieces(def.Opposite()) {
		if !board.TypeOf(id).IsRoyal() {
			l.candidate[id] = struct{}{}
		}
	}
	t.refresh(def)
}

// refresh recomputes reachable from candidate, then obstructed from
// reachable, against def's royal piece.
func (t *CheckTracker) refresh(def chess.Colour) {
	l := t.lists[def]
	l.reachable = idSet{}
	l.obstructed = idSet{}

	royal := t.royals[def]
	if royal == chess.NoID {
		return
	}
	target := t.eng.board.CoordOf(royal)
	for id := range l.candidate {
		if t.eng.reaches(id, target) {
			l.reachable[id] = struct{}{}
		}
	}
	for id := range l.reachable {
		if t.eng.path.Obstructs(id, target) {
			l.obstructed[id] = struct{}{}
		}
	}
}

// active returns def's reachable attackers that are not obstructed.
func (t *CheckTracker) active(def chess.Colour) []chess.PieceID {
	l := t.lists[def]
	var ids []chess.PieceID
	for _, id := range l.reachable.sorted() {
		if _, blocked := l.obstructed[id]; !blocked {
			ids = append(ids, id)
		}
	}
	return ids
}

// TryAnnounceCheck recomputes the threat the side of moved now poses to the
// opposing royal piece and announces one check per unobstructed attacker.
// It returns the announced attackers. After checkmate it does nothing.
func (t *CheckTracker) TryAnnounceCheck(moved chess.PieceID) []chess.PieceID {
	if t.state == Checkmated {
		return nil
	}
	def := t.eng.board.SideOf(moved).Opposite()
	if t.royals[def] == chess.NoID {
		return nil
	}
	t.refresh(def)

	t.buffer = append(t.buffer, t.active(def)...)
	announced := append([]chess.PieceID(nil), t.buffer...)
	for _, id := range t.buffer {
		t.eng.notify.AnnounceCheck(id)
	}
	t.buffer = t.buffer[:0]
	return announced
}

// IsCheckmate reports whether captured is a royal piece. A true result
// moves the tracker to its terminal Checkmated state.
func (t *CheckTracker) IsCheckmate(captured chess.PieceID) bool {
	if captured == chess.NoID {
		return false
	}
	if captured != t.royals[chess.White] && captured != t.royals[chess.Black] {
		return false
	}
	t.state = Checkmated
	return true
}

// Purge removes id from every list of both sides.
func (t *CheckTracker) Purge(id chess.PieceID) {
	for _, l := range t.lists {
		delete(l.candidate, id)
		delete(l.reachable, id)
		delete(l.obstructed, id)
	}
}

// IsAttacked reports whether any piece of by, royal pieces included, could
// capture on cell right now.
func (t *CheckTracker) IsAttacked(cell chess.Coord, by chess.Colour) bool {
	for _, id := range t.eng.board.Pieces(by) {
		if t.eng.attacks(id, cell) {
			return true
		}
	}
	return false
}

// InCheck refreshes side's lists and reports whether its royal piece is
// attacked by an unobstructed candidate.
func (t *CheckTracker) InCheck(side chess.Colour) bool {
	if t.royals[side] == chess.NoID {
		return false
	}
	t.refresh(side)
	return len(t.active(side)) > 0
}

// Lists returns a snapshot of side's attacker lists.
func (t *CheckTracker) Lists(side chess.Colour) CheckLists {
	l := t.lists[side]
	return CheckLists{
		Candidate:  l.candidate.sorted(),
		Reachable:  l.reachable.sorted(),
		Obstructed: l.obstructed.sorted(),
	}
}

// Royal returns the tracked royal piece of side.
func (t *CheckTracker) Royal(side chess.Colour) chess.PieceID {
	return t.royals[side]
}

// State returns the tracker's lifecycle state.
func (t *CheckTracker) State() TrackerState {
	return t.state
}
