package physics

// SolverSettings bounds the work the resolver does per tick.
type SolverSettings struct {
	PositionIterations int     `yaml:"position_iterations"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PenetrationEpsilon float32 `yaml:"penetration_epsilon"`
	VelocityEpsilon    float32 `yaml:"velocity_epsilon"`
	AngularMoveLimit   float32 `yaml:"angular_move_limit"`
}

func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		PositionIterations: 5,
		VelocityIterations: 5,
		PenetrationEpsilon: 0.01,
		VelocityEpsilon:    0.01,
		AngularMoveLimit:   0.2,
	}
}

// Resolver runs the penetration and velocity passes over one tick's contacts.
type Resolver struct {
	Settings SolverSettings
}

func NewResolver(s SolverSettings) *Resolver {
	return &Resolver{Settings: s}
}

// ResolveResult reports what one Resolve call did.
type ResolveResult struct {
	PositionIterations int
	VelocityIterations int
	MaxPenetration     float32 // deepest penetration left after the position pass
}

// Resolve prepares every contact, then removes interpenetration and finally
// closing velocity, always working on the worst contact first.
// Each pass stops when nothing is above its epsilon or its budget is spent.
func (r *Resolver) Resolve(contacts []Contact) ResolveResult {
	var result ResolveResult
	if len(contacts) == 0 {
		return result
	}

	for i := range contacts {
		contacts[i].CalculateContactData()
	}

	result.PositionIterations = r.resolvePositions(contacts)
	result.VelocityIterations = r.resolveVelocities(contacts)

	for i := range contacts {
		if contacts[i].Penetration > result.MaxPenetration {
			result.MaxPenetration = contacts[i].Penetration
		}
	}
	return result
}

func (r *Resolver) resolvePositions(contacts []Contact) int {
	used := 0
	for used < r.Settings.PositionIterations {
		worst := -1
		deepest := r.Settings.PenetrationEpsilon
		for i := range contacts {
			if contacts[i].Penetration > deepest {
				deepest = contacts[i].Penetration
				worst = i
			}
		}
		if worst < 0 {
			break
		}

		deltas := contacts[worst].ResolveInterpenetration(r.Settings.AngularMoveLimit)
		used++

		for _, d := range deltas {
			if d.Body == nil {
				continue
			}
			for i := range contacts {
				contacts[i].applyPositionDelta(d)
			}
		}
	}
	return used
}

func (r *Resolver) resolveVelocities(contacts []Contact) int {
	used := 0
	for used < r.Settings.VelocityIterations {
		worst := -1
		lowest := -r.Settings.VelocityEpsilon
		for i := range contacts {
			if contacts[i].deltaClosingVelocity < lowest {
				lowest = contacts[i].deltaClosingVelocity
				worst = i
			}
		}
		if worst < 0 {
			break
		}

		deltas := contacts[worst].ResolveVelocity()
		used++

		for _, d := range deltas {
			if d.Body == nil {
				continue
			}
			for i := range contacts {
				contacts[i].applyVelocityDelta(d)
			}
		}
	}
	return used
}
