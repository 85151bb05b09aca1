package blueprint

import "fmt"

type Resource int

const (
	NoTarget Resource = iota - 1
	Ore
	Clay
	Obsidian
	Geode
)

// NumResources is the number of resource kinds.
const NumResources = 4

var resourceNames = [NumResources]string{"ore", "clay", "obsidian", "geode"}

func (r Resource) String() string {
	if r < Ore || r > Geode {
		return "none"
	}
	return resourceNames[r]
}

// Resources holds one quantity per resource kind, indexed by Resource.
type Resources [NumResources]int

// Single returns a Resources with a quantity of one for r.
func Single(r Resource) Resources {
	var res Resources
	res[r] = 1
	return res
}

func (r Resources) Add(other Resources) Resources {
	for i := range r {
		r[i] += other[i]
	}
	return r
}

// Sub subtracts component-wise, clamping at zero.
func (r Resources) Sub(other Resources) Resources {
	for i := range r {
		r[i] -= other[i]
		if r[i] < 0 {
			r[i] = 0
		}
	}
	return r
}

// Contains reports whether every quantity in r is at least the one in other.
func (r Resources) Contains(other Resources) bool {
	for i := range r {
		if r[i] < other[i] {
			return false
		}
	}
	return true
}

func (r Resources) String() string {
	return fmt.Sprintf("[ore=%d clay=%d obsidian=%d geode=%d]", r[Ore], r[Clay], r[Obsidian], r[Geode])
}
