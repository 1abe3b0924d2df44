package timelineutil

// Sparsify recursively strips empty values (null, numeric zero, empty string,
// empty container) from a JSON-like tree. Keys in the protected set survive
// regardless of emptiness. Sequence elements are always retained positionally,
// even when they sparsify down to an empty container, because presence in an
// event or frame list is itself meaningful. Idempotent.
func Sparsify(node any) any {
	switch n := node.(type) {
	case map[string]any:
		sparse := make(map[string]any, len(n))
		for key, value := range n {
			sparseValue := Sparsify(value)
			if _, protected := protectedKeys[key]; protected || !isEmptyValue(sparseValue) {
				sparse[key] = sparseValue
			}
		}
		return sparse
	case []any:
		sparse := make([]any, len(n))
		for i, el := range n {
			sparse[i] = Sparsify(el)
		}
		return sparse
	default:
		return node
	}
}
