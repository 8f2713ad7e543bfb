package goal

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrGoalNotFound is returned when an operation references a goal ID
	// absent from the document.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrMoveUnderSelf is returned when a move would make a goal its own
	// parent.
	ErrMoveUnderSelf = errors.New("goal cannot become its own parent")

	// ErrMoveIntoDescendant is returned when a move would create a parent
	// cycle.
	ErrMoveIntoDescendant = errors.New("goal cannot move under its own descendant")

	// ErrParentTooNarrow is returned when the resulting parent's level is
	// not strictly broader than the moved goal's level.
	ErrParentTooNarrow = errors.New("parent level must be broader than goal level")
)

// Node is a goal with its resolved children, ordered for display.
type Node struct {
	Goal     Goal
	Children []*Node
}

// BuildTree arranges goals into a forest. Goals whose parent reference
// does not resolve are treated as roots. Siblings at every depth sort by
// (order, title) with unassigned orders last.
func BuildTree(goals []Goal) []*Node {
	nodes := make(map[string]*Node, len(goals))

	for _, goal := range goals {
		nodes[goal.ID] = &Node{Goal: goal}
	}

	var roots []*Node

	for _, goal := range goals {
		node := nodes[goal.ID]

		if goal.ParentGoalID == "" {
			roots = append(roots, node)

			continue
		}

		parent, ok := nodes[goal.ParentGoalID]
		if !ok || parent == node {
			roots = append(roots, node)

			continue
		}

		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)

	return roots
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Goal, nodes[j].Goal
		if orderKey(a) != orderKey(b) {
			return orderKey(a) < orderKey(b)
		}

		return a.Title < b.Title
	})

	for _, node := range nodes {
		sortNodes(node.Children)
	}
}

// MovePosition places a moved goal relative to the target within its new
// sibling group.
type MovePosition string

const (
	PositionBefore MovePosition = "before"
	PositionAfter  MovePosition = "after"
)

// Move relocates the goal with sourceID relative to the goal with
// targetID and returns the updated goal list. The input slice is not
// modified.
//
// If the target's level is strictly broader than the source's, the source
// becomes a child of the target; otherwise it becomes the target's
// sibling under the target's own parent. Both the vacated and the
// receiving sibling groups are renumbered to a contiguous 1..N.
func Move(goals []Goal, sourceID, targetID string, position MovePosition) ([]Goal, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: %s", ErrMoveUnderSelf, sourceID)
	}

	updated := make([]Goal, len(goals))
	copy(updated, goals)

	byID := indexByID(updated)

	sourceIdx, ok := byID[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, sourceID)
	}

	targetIdx, ok := byID[targetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, targetID)
	}

	source := updated[sourceIdx]
	target := updated[targetIdx]

	if isDescendant(updated, byID, targetID, sourceID) {
		return nil, fmt.Errorf("%w: %s under %s", ErrMoveIntoDescendant, sourceID, targetID)
	}

	sourceRank := Rank(source.Level)
	targetRank := Rank(target.Level)

	var newParentID string

	if targetRank < sourceRank {
		newParentID = target.ID
	} else {
		newParentID = target.ParentGoalID
	}

	if newParentID == source.ID {
		return nil, fmt.Errorf("%w: %s", ErrMoveUnderSelf, sourceID)
	}

	if newParentID != "" {
		parentIdx, ok := byID[newParentID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, newParentID)
		}

		if Rank(updated[parentIdx].Level) >= sourceRank {
			return nil, fmt.Errorf("%w: %s is %s, %s is %s",
				ErrParentTooNarrow,
				newParentID, updated[parentIdx].Level,
				sourceID, source.Level)
		}
	}

	oldParentID := source.ParentGoalID
	updated[sourceIdx].ParentGoalID = newParentID

	if oldParentID != newParentID {
		reorderGroup(updated, source.Level, oldParentID, "", "", PositionAfter)
	}

	switch {
	case newParentID == target.ID:
		// Dropped onto the parent itself: append at the end of its
		// children rather than splicing by a sibling anchor.
		reorderGroup(updated, source.Level, newParentID, sourceID, "", PositionAfter)
	case target.ParentGoalID == newParentID:
		reorderGroup(updated, source.Level, newParentID, sourceID, targetID, position)
	default:
		reorderGroup(updated, source.Level, newParentID, sourceID, "", PositionAfter)
	}

	return updated, nil
}

// MoveToRoot detaches the goal from its parent and appends it to the end
// of the root group of its level.
func MoveToRoot(goals []Goal, sourceID string) ([]Goal, error) {
	updated := make([]Goal, len(goals))
	copy(updated, goals)

	byID := indexByID(updated)

	sourceIdx, ok := byID[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotFound, sourceID)
	}

	source := updated[sourceIdx]

	oldParentID := source.ParentGoalID
	if oldParentID == "" {
		return updated, nil
	}

	updated[sourceIdx].ParentGoalID = ""

	reorderGroup(updated, source.Level, oldParentID, "", "", PositionAfter)
	reorderGroup(updated, source.Level, "", sourceID, "", PositionAfter)

	return updated, nil
}

func indexByID(goals []Goal) map[string]int {
	byID := make(map[string]int, len(goals))

	for idx, goal := range goals {
		byID[goal.ID] = idx
	}

	return byID
}

// isDescendant reports whether candidate sits below ancestorID, walking
// parent links upward with a visited set to survive pre-existing cycles
// in a hand-edited document.
func isDescendant(goals []Goal, byID map[string]int, candidateID, ancestorID string) bool {
	visited := make(map[string]bool)

	currentID := candidateID

	for currentID != "" && !visited[currentID] {
		visited[currentID] = true

		idx, ok := byID[currentID]
		if !ok {
			return false
		}

		parentID := goals[idx].ParentGoalID
		if parentID == ancestorID {
			return true
		}

		currentID = parentID
	}

	return false
}

// reorderGroup renumbers the sibling group sharing (level, parentID) to
// 1..N. When movedID is set, that goal is spliced in: at the end when
// anchorID is empty, otherwise immediately before or after the anchor.
func reorderGroup(goals []Goal, level Level, parentID, movedID, anchorID string, position MovePosition) {
	var groupIdx []int

	for idx, goal := range goals {
		if goal.Level == level && goal.ParentGoalID == parentID && goal.ID != movedID {
			groupIdx = append(groupIdx, idx)
		}
	}

	sort.SliceStable(groupIdx, func(i, j int) bool {
		a, b := goals[groupIdx[i]], goals[groupIdx[j]]
		if orderKey(a) != orderKey(b) {
			return orderKey(a) < orderKey(b)
		}

		return a.Title < b.Title
	})

	if movedID != "" {
		movedGroupIdx := -1

		for idx, goal := range goals {
			if goal.ID == movedID && goal.Level == level && goal.ParentGoalID == parentID {
				movedGroupIdx = idx

				break
			}
		}

		if movedGroupIdx != -1 {
			insertAt := len(groupIdx)

			if anchorID != "" {
				for pos, idx := range groupIdx {
					if goals[idx].ID == anchorID {
						insertAt = pos
						if position == PositionAfter {
							insertAt = pos + 1
						}

						break
					}
				}
			}

			groupIdx = append(groupIdx, 0)
			copy(groupIdx[insertAt+1:], groupIdx[insertAt:])
			groupIdx[insertAt] = movedGroupIdx
		}
	}

	for pos, idx := range groupIdx {
		goals[idx].Order = pos + 1
	}
}
