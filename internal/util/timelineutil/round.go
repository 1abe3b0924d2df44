package timelineutil

import "math"

// RoundFloats recursively rounds every float leaf of a JSON-like tree to the
// given number of decimals. Applied before artifacts are serialized into
// prompts to bound their token footprint.
func RoundFloats(node any, decimals int) any {
	switch n := node.(type) {
	case map[string]any:
		rounded := make(map[string]any, len(n))
		for key, value := range n {
			rounded[key] = RoundFloats(value, decimals)
		}
		return rounded
	case []any:
		rounded := make([]any, len(n))
		for i, el := range n {
			rounded[i] = RoundFloats(el, decimals)
		}
		return rounded
	case float64:
		pow := math.Pow(10, float64(decimals))
		return math.Round(n*pow) / pow
	default:
		return node
	}
}
