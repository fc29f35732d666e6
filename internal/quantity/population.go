package quantity

// Demographic is one of the five workforce tiers.
type Demographic string

const (
	Pioneers    Demographic = "PIONEER"
	Settlers    Demographic = "SETTLER"
	Technicians Demographic = "TECHNICIAN"
	Engineers   Demographic = "ENGINEER"
	Scientists  Demographic = "SCIENTIST"
)

// Demographics lists all tiers in canonical order.
var Demographics = []Demographic{Pioneers, Settlers, Technicians, Engineers, Scientists}

// Population maps demographics to head counts. Positive values are demand,
// negative values are capacity (housing).
type Population map[Demographic]float64

// Add returns p + q.
func (p Population) Add(q Population) Population {
	out := make(Population, len(p)+len(q))
	for _, d := range Demographics {
		if v := p[d] + q[d]; v != 0 {
			out[d] = v
		}
	}
	return out
}

// Scale returns p with every count multiplied by k.
func (p Population) Scale(k float64) Population {
	out := make(Population, len(p))
	for d, v := range p {
		if v*k != 0 {
			out[d] = v * k
		}
	}
	return out
}

// Neg returns -p, flipping demand into capacity and back.
func (p Population) Neg() Population { return p.Scale(-1) }

// Total returns the summed head count across all demographics.
func (p Population) Total() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum
}

// IsZero reports whether every demographic is zero.
func (p Population) IsZero() bool {
	for _, v := range p {
		if v != 0 {
			return false
		}
	}
	return true
}

// Covers reports whether capacity -p (or p itself when positive) meets
// demand q for every demographic.
func (p Population) Covers(q Population) bool {
	for _, d := range Demographics {
		if p[d] < q[d] {
			return false
		}
	}
	return true
}

// Upkeep converts a population demand into a per-day ResourceBag using a
// per-100-heads needs table.
func (p Population) Upkeep(needs map[Demographic]ResourceBag) ResourceBag {
	total := ResourceBag{}
	for _, d := range Demographics {
		count := p[d]
		if count <= 0 {
			continue
		}
		if bag, ok := needs[d]; ok {
			total = total.Add(bag.Scale(count / 100))
		}
	}
	return total
}
