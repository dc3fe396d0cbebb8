package genome

// Distance is an edit distance between two recipes where every edit costs
// the magnitude of the genetic change rather than 1: substituting a for b
// costs |a-b|, inserting or deleting b costs |b| (values decoded).
// It runs in O(len(a)*len(b)) time and O(len(b)) space.
func Distance(a, b []byte) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 1; j <= len(b); j++ {
		prev[j] = prev[j-1] + Abs(b[j-1])
	}
	for i := 1; i <= len(a); i++ {
		va := ToInt(a[i-1])
		del := abs(va)
		cur[0] = prev[0] + del
		for j := 1; j <= len(b); j++ {
			vb := ToInt(b[j-1])
			best := prev[j-1] + abs(va-vb)
			if d := prev[j] + del; d < best {
				best = d
			}
			if ins := cur[j-1] + abs(vb); ins < best {
				best = ins
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Distance returns the cost-weighted edit distance to another recipe.
// Colour is not part of the distance.
func (r *Recipe) Distance(o *Recipe) int {
	return Distance(r.code, o.code)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
