package internal

// ReconstructPath rebuilds the path ending at current by following parentOf
// back to start. It reports false when the chain breaks before start.
func ReconstructPath[NodeType comparable](
	parentOf func(NodeType) (NodeType, bool),
	current NodeType,
	start NodeType,
) ([]NodeType, bool) {
	path := []NodeType{current}
	for current != start {
		previousNode, exists := parentOf(current)
		if !exists {
			return nil, false
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}
