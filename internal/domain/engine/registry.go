package engine

// Registry is the validated, immutable, ordered collection of steps for one
// run. Construction fails with InvalidRegistryError if IDs collide, a
// dependency does not resolve, or the dependency graph has a cycle.
type Registry struct {
	ordered []Step
	index   map[string]Step
}

// NewRegistry validates the declared steps and returns an immutable
// registry. The returned step order is topological with respect to
// DependsOn edges and preserves declared order among unconstrained steps.
func NewRegistry(steps ...Step) (*Registry, error) {
	index := make(map[string]Step, len(steps))
	for _, step := range steps {
		id := step.ID().String()
		if _, exists := index[id]; exists {
			return nil, &InvalidRegistryError{StepID: id, Reason: ErrDuplicateStep}
		}
		index[id] = step
	}

	for _, step := range steps {
		for _, dep := range step.DependsOn() {
			if _, exists := index[dep.String()]; !exists {
				return nil, &InvalidRegistryError{StepID: step.ID().String(), Reason: ErrMissingDependency}
			}
		}
	}

	ordered, err := sortSteps(steps)
	if err != nil {
		return nil, err
	}

	return &Registry{ordered: ordered, index: index}, nil
}

// Steps returns the execution-ordered steps.
func (r *Registry) Steps() []Step {
	steps := make([]Step, len(r.ordered))
	copy(steps, r.ordered)
	return steps
}

// Get retrieves a step by ID.
func (r *Registry) Get(id StepID) (Step, bool) {
	step, ok := r.index[id.String()]
	return step, ok
}

// Len returns the number of steps in the registry.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// sortSteps runs Kahn's algorithm over the DependsOn edges, always taking
// the ready step with the lowest declared index so that unconstrained steps
// keep their declared order.
func sortSteps(steps []Step) ([]Step, error) {
	inDegree := make(map[string]int, len(steps))
	dependents := make(map[string][]string, len(steps))
	position := make(map[string]int, len(steps))

	for i, step := range steps {
		id := step.ID().String()
		position[id] = i
		inDegree[id] = len(step.DependsOn())
		for _, dep := range step.DependsOn() {
			depID := dep.String()
			dependents[depID] = append(dependents[depID], id)
		}
	}

	byID := make(map[string]Step, len(steps))
	for _, step := range steps {
		byID[step.ID().String()] = step
	}

	sorted := make([]Step, 0, len(steps))
	done := make(map[string]bool, len(steps))

	for len(sorted) < len(steps) {
		next := ""
		for _, step := range steps {
			id := step.ID().String()
			if !done[id] && inDegree[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			return nil, &InvalidRegistryError{Reason: ErrCyclicDependency}
		}

		done[next] = true
		sorted = append(sorted, byID[next])
		for _, dependent := range dependents[next] {
			inDegree[dependent]--
		}
	}

	return sorted, nil
}
