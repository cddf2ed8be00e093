package types

// Finding is one reported invariant.
type Finding struct {
	ID            int      `json:"id"`
	Kind          string   `json:"kind"`
	Formula       string   `json:"formula"`
	Vars          []string `json:"vars"`
	Justification float64  `json:"justification"`
}

// PointReport collects the findings of one program point.
type PointReport struct {
	Point    string    `json:"point"`
	Samples  int       `json:"samples"`
	Findings []Finding `json:"findings"`
	// Hidden counts live invariants left out as suppressed, obvious, or
	// insufficiently justified.
	Hidden int `json:"hidden"`
}
