package expansion

import (
	"github.com/dd0wney/cluso-graphview/pkg/graphview"
)

// descendantClosure computes the forward-reachable node ids from rootID
// over the currently visible edges, excluding the root itself. The visited
// set is mandatory: link graphs may contain cycles.
func descendantClosure(state *graphview.State, rootID string) map[string]bool {
	visited := map[string]bool{rootID: true}
	closure := make(map[string]bool)

	queue := []string{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range state.OutgoingEdges(current) {
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			closure[e.Target] = true
			queue = append(queue, e.Target)
		}
	}

	return closure
}

// ancestorClosure computes the backward-reachable node ids from targetID
// over the currently visible edges, excluding the target itself. Guarded
// against cycles the same way as the forward closure.
func ancestorClosure(state *graphview.State, targetID string) map[string]bool {
	visited := map[string]bool{targetID: true}
	closure := make(map[string]bool)

	queue := []string{targetID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range state.IncomingEdges(current) {
			if visited[e.Source] {
				continue
			}
			visited[e.Source] = true
			closure[e.Source] = true
			queue = append(queue, e.Source)
		}
	}

	return closure
}
