package engine

// fakeStep is a configurable Step for engine tests. Probe and apply counts
// let tests assert the executor's idempotence guarantees.
type fakeStep struct {
	id       StepID
	category Category
	critical bool
	deps     []StepID
	state    SatisfactionState
	probeErr error
	applyErr error

	probes  int
	applies int
}

func newFakeStep(id string) *fakeStep {
	return &fakeStep{
		id:       MustNewStepID(id),
		category: CategoryPackageManager,
		state:    StateMissing,
	}
}

func (s *fakeStep) withDeps(ids ...string) *fakeStep {
	for _, id := range ids {
		s.deps = append(s.deps, MustNewStepID(id))
	}
	return s
}

func (s *fakeStep) withState(state SatisfactionState) *fakeStep {
	s.state = state
	return s
}

func (s *fakeStep) withCritical() *fakeStep {
	s.critical = true
	return s
}

func (s *fakeStep) withCategory(category Category) *fakeStep {
	s.category = category
	return s
}

func (s *fakeStep) withProbeErr(err error) *fakeStep {
	s.probeErr = err
	return s
}

func (s *fakeStep) withApplyErr(err error) *fakeStep {
	s.applyErr = err
	return s
}

func (s *fakeStep) ID() StepID          { return s.id }
func (s *fakeStep) Description() string { return s.id.String() }
func (s *fakeStep) Category() Category  { return s.category }
func (s *fakeStep) Critical() bool      { return s.critical }
func (s *fakeStep) DependsOn() []StepID { return s.deps }

func (s *fakeStep) Probe(RunContext) (SatisfactionState, error) {
	s.probes++
	return s.state, s.probeErr
}

func (s *fakeStep) Apply(RunContext) error {
	s.applies++
	return s.applyErr
}

var _ Step = (*fakeStep)(nil)
