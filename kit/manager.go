/*
Package kit is the run manager layered on top of the adsearch engine: a
named registry of problem instances, a slot-based Action mechanism, and
a Run loop that drives a sequence of independent solves. There is only
one algorithm (adsearch.Solver), so Manager carries a single problem
registry rather than separate cost-function/algorithm axes.
*/
package kit

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mathrgo/adsearch"
	"github.com/mathrgo/adsearch/internal/rng"
	"github.com/mathrgo/adsearch/problem/allinterval"
	"github.com/mathrgo/adsearch/problem/langford"
	"github.com/mathrgo/adsearch/problem/quasigroup"
	"github.com/mathrgo/adsearch/problem/smti"
	"github.com/mathrgo/adsearch/qwh"
)

// DefaultProblem is the default problem instance.
const DefaultProblem = "allinterval-12"

// Model is the engine's Model interface, re-exported so callers that only
// import kit need not also import adsearch.
type Model = adsearch.Model

// CreateProblem is the interface for creating new instances of a problem
// model. Everything about an instance other than the random seed - board
// file, order, K - is baked into the creator, exactly as psokit's
// CreateFun.Create(sd) bakes in everything but the seed.
type CreateProblem interface {
	Create(sd int64) (Model, error)
}

/*
CreateAct is the interface for creating new instances of Action. Each
Action must implement the appropriate subset of the Act* interfaces to
indicate where it runs in a run sequence:

	ActInit     // pre-runs Action
	ActRunInit  // pre-run Action
	ActUpdate   // per-iteration Action
	ActData     // Action occurring every Nthink() iterations
	ActResult   // post-run Action
	ActSummary  // post-runs Action
*/
type CreateAct interface{ Create(sd int64) Act }

// ActInit is the interface for pre-runs initializing Action, run once
// before the first problem instance and Solver are available.
type ActInit interface{ Init(man *Manager) }

// ActRunInit is the interface for a run-initializing Action, run after a
// fresh problem instance has been created for the run but before Solve.
type ActRunInit interface{ RunInit(man *Manager) }

/*
ActUpdate is the interface for a per-iteration Action. adsearch.Solver.Solve
does not hand control back to the caller between iterations the way
setpso.PsoInterface.Update() does; Manager recovers that granularity by
installing a logrus.Hook on the Solver's debug log (see updateHook) and
firing ActUpdate from it, so this still runs once per committed swap or
reset exactly as intended.
*/
type ActUpdate interface{ Update(man *Manager) }

// ActData is the interface for data input/output Actions that occur every
// Nthink() iterations, reducing the communication bandwidth for memory
// demanding Actions such as plotting.
type ActData interface{ DataUpdate(man *Manager) }

// ActResult is the interface for post-run Action.
type ActResult interface{ Result(man *Manager) }

// ActSummary is the interface for post-runs Action.
type ActSummary interface{ Summary(man *Manager) }

// Act is for arbitrary Action, slotted in based on the Act* interfaces it
// implements.
type Act interface{}

// Manager manages a sequence of independent solves of a named problem
// instance.
type Manager struct {
	model       Model
	problemCase string
	probd       map[string]string
	addedProblem map[string]CreateProblem

	h      adsearch.Heuristics
	solver *adsearch.Solver
	source *rng.Source

	actd       map[string]string
	addedAct   map[string]CreateAct
	actInit    []ActInit
	actRunInit []ActRunInit
	actUpdate  []ActUpdate
	actData    []ActData
	actResult  []ActResult
	actSummary []ActSummary

	// Log is shared with the Solver for the duration of each run; its
	// Debug-level entries are what drives ActUpdate/ActData (see
	// updateHook). Out defaults to io.Discard: set it (or add your own
	// Hook/Formatter) to get an iteration log file.
	Log *logrus.Logger

	// iteration/data counters during a run
	iter, diter, nthink int

	// run id and run count
	runid, nrun int

	// problem seed = problemSeed0 + problemSeed1*runid
	problemSeed0, problemSeed1 int64
	// solver seed = solverSeed0 + solverSeed1*runid
	solverSeed0, solverSeed1 int64

	// result of the most recent Solve
	cost  int
	stats adsearch.Stats
}

// updateHook bridges the Solver's per-iteration debug log entries into
// Manager's ActUpdate/ActData Actions, the one piece of per-iteration
// granularity Solve's single blocking call otherwise hides from a caller.
type updateHook struct{ man *Manager }

func (h *updateHook) Levels() []logrus.Level { return []logrus.Level{logrus.DebugLevel} }

func (h *updateHook) Fire(*logrus.Entry) error {
	man := h.man
	man.iter++
	for i := range man.actUpdate {
		man.actUpdate[i].Update(man)
	}
	if man.nthink > 0 && man.iter%man.nthink == 0 {
		man.diter++
		for i := range man.actData {
			man.actData[i].DataUpdate(man)
		}
	}
	return nil
}

// NewMan creates a default Manager with the built-in problem instances
// registered.
func NewMan() *Manager {
	man := new(Manager)
	man.problemCase = DefaultProblem
	man.probd = make(map[string]string)
	man.addedProblem = make(map[string]CreateProblem)
	man.loadProblemDescription()

	man.addedAct = make(map[string]CreateAct)
	man.loadActDescription()
	man.actInit = make([]ActInit, 0, 10)
	man.actRunInit = make([]ActRunInit, 0, 10)
	man.actUpdate = make([]ActUpdate, 0, 10)
	man.actData = make([]ActData, 0, 10)
	man.actResult = make([]ActResult, 0, 10)
	man.actSummary = make([]ActSummary, 0, 10)

	man.h = adsearch.DefaultHeuristics()
	man.Log = logrus.New()
	man.Log.SetLevel(logrus.DebugLevel)
	man.Log.SetOutput(io.Discard)
	man.Log.AddHook(&updateHook{man: man})

	man.nthink = 50
	man.nrun = 1
	man.problemSeed0 = 3142
	man.problemSeed1 = 0
	man.solverSeed0 = 578
	man.solverSeed1 = 34
	return man
}

/*
Init creates the problem instance and Solver for the current run based on
man's settings. It is called automatically at the start of each Run
iteration; exported for callers (and tests) that need a single instance
without running a full sequence.
*/
func (man *Manager) Init() error {
	sd := man.problemSeed0 + man.problemSeed1*int64(man.runid)
	m, err := man.CreateProblem(man.problemCase, sd)
	if err != nil {
		return err
	}
	man.model = m
	ssd := man.solverSeed0 + man.solverSeed1*int64(man.runid)
	man.source = rng.New(ssd)
	man.solver = adsearch.NewSolver(m.Size(), man.h, man.source)
	man.solver.Log = man.Log
	return nil
}

// Model returns the problem instance in use for Actions during a run.
func (man *Manager) Model() Model { return man.model }

// Solver returns the Solver in use for Actions during a run.
func (man *Manager) Solver() *adsearch.Solver { return man.solver }

// Heuristics returns the heuristics used for every run.
func (man *Manager) Heuristics() adsearch.Heuristics { return man.h }

// SetHeuristics sets the heuristics used for every run.
func (man *Manager) SetHeuristics(h adsearch.Heuristics) { man.h = h }

// Cost returns the best cost found by the most recently completed run.
func (man *Manager) Cost() int { return man.cost }

// Stats returns the accumulated counters of the most recently completed run.
func (man *Manager) Stats() adsearch.Stats { return man.stats }

// Iter returns the iteration count during a run.
func (man *Manager) Iter() int { return man.iter }

// Diter returns the data-output count during a run.
func (man *Manager) Diter() int { return man.diter }

// SetNthink sets the number of iterations between data outputs.
func (man *Manager) SetNthink(n int) { man.nthink = n }

// Nthink returns the number of iterations between data outputs.
func (man *Manager) Nthink() int { return man.nthink }

// RunID returns the run number.
func (man *Manager) RunID() int { return man.runid }

// SetNrun sets the number of runs.
func (man *Manager) SetNrun(n int) { man.nrun = n }

// Nrun returns the number of runs.
func (man *Manager) Nrun() int { return man.nrun }

// ProblemCase returns the problem instance name.
func (man *Manager) ProblemCase() string { return man.problemCase }

// SetProblemCase sets the problem instance name.
func (man *Manager) SetProblemCase(name string) { man.problemCase = name }

// ProblemSeed returns the problem seed components, where
// seed = sd0 + sd1*RunID().
func (man *Manager) ProblemSeed() (sd0, sd1 int64) { return man.problemSeed0, man.problemSeed1 }

// SetProblemSeed sets the problem seed components.
func (man *Manager) SetProblemSeed(sd0, sd1 int64) {
	man.problemSeed0, man.problemSeed1 = sd0, sd1
}

// SolverSeed returns the solver seed components.
func (man *Manager) SolverSeed() (sd0, sd1 int64) { return man.solverSeed0, man.solverSeed1 }

// SetSolverSeed sets the solver seed components.
func (man *Manager) SetSolverSeed(sd0, sd1 int64) {
	man.solverSeed0, man.solverSeed1 = sd0, sd1
}

// String gives a description of man's settings.
func (man *Manager) String() string {
	s := "Manager Settings:\n"
	s += fmt.Sprintf("problem = %s\n", man.problemCase)
	s += fmt.Sprintf("Number of Runs = %d\n", man.nrun)
	s += fmt.Sprintf("Thinking interval between data coms = %d\n", man.nthink)
	s += fmt.Sprintf("problemSeed=%d + runid*%d\t", man.problemSeed0, man.problemSeed1)
	s += fmt.Sprintf("solverSeed=%d + runid*%d\n", man.solverSeed0, man.solverSeed1)
	return s
}

/*
Run runs the current problem instance for Nrun() independent runs,
activating Actions slotted into Init/RunInit/Update/DataUpdate/
Result/Summary according to their interfaces, exactly as ManPso.Run does.
*/
func (man *Manager) Run() {
	for i := range man.actInit {
		man.actInit[i].Init(man)
	}
	for man.runid = 0; man.runid < man.nrun; man.runid++ {
		man.iter, man.diter = 0, 0
		if err := man.Init(); err != nil {
			log.Printf("kit: %v", err)
			continue
		}
		for i := range man.actRunInit {
			man.actRunInit[i].RunInit(man)
		}
		man.cost, man.stats = man.solver.Solve(man.model)
		for i := range man.actResult {
			man.actResult[i].Result(man)
		}
	}
	for i := range man.actSummary {
		man.actSummary[i].Summary(man)
	}
}

/*
AddProblem adds a problem instance creator c with an assigned name to
reference it by, where desc describes it. Instance names cannot be
reused; call DelProblem first if you need to replace one.
*/
func (man *Manager) AddProblem(name, desc string, c CreateProblem) error {
	if man.probd[name] != "" {
		return fmt.Errorf("attempted to add %s to a problem creator that exists", name)
	}
	man.probd[name] = desc
	man.addedProblem[name] = c
	return nil
}

// DelProblem deletes an added problem instance creator. As a temporary
// measure man falls back to DefaultProblem if name was selected.
func (man *Manager) DelProblem(name string) error {
	if man.addedProblem[name] == nil {
		return fmt.Errorf("could not delete problem creator %s", name)
	}
	delete(man.addedProblem, name)
	delete(man.probd, name)
	if name == man.problemCase {
		man.problemCase = DefaultProblem
	}
	return nil
}

// SelectProblem primes man to use the named problem instance for the next
// Run. It checks that a creator with that name exists.
func (man *Manager) SelectProblem(name string) error {
	if man.probd[name] == "" {
		return fmt.Errorf("the problem instance %s could not be found", name)
	}
	man.problemCase = name
	return nil
}

/*
CreateProblem returns the problem instance based on its name and seed. It
is called by man at the start of each run; SelectProblem primes man
before a run instead if you are driving Run().
*/
func (man *Manager) CreateProblem(name string, sd int64) (Model, error) {
	switch name {
	case "allinterval-12":
		return allinterval.New(12, rng.New(sd)), nil
	case "langford-4":
		return langford.New(4, langford.Langford, 2, rng.New(sd))
	case "skolem-4":
		return langford.New(4, langford.Skolem, 2, rng.New(sd))
	case "quasigroup-demo":
		b, err := quasigroup.Parse(strings.NewReader(quasigroupDemoBoard))
		if err != nil {
			return nil, err
		}
		return quasigroup.New(b, rng.New(sd)), nil
	case "qwh-demo":
		b, err := qwh.Parse(strings.NewReader(qwhDemoBoard))
		if err != nil {
			return nil, err
		}
		return qwh.New(b, rng.New(sd))
	case "smti-demo":
		p, err := smti.Parse(strings.NewReader(smtiDemoProblem))
		if err != nil {
			return nil, err
		}
		return smti.New(p, rng.New(sd)), nil
	default:
		c := man.addedProblem[name]
		if c == nil {
			return nil, fmt.Errorf("problem instance %s not found", name)
		}
		return c.Create(sd)
	}
}

// loadProblemDescription loads the description of the built-in problem
// instances; done here to give easy comparison with CreateProblem's list.
func (man *Manager) loadProblemDescription() {
	man.probd = map[string]string{
		"allinterval-12": "all-interval series of size 12",
		"langford-4":      "Langford pairing L(2,4)",
		"skolem-4":        "Skolem sequence S(2,4)",
		"quasigroup-demo": "small quasigroup completion board with a few holes",
		"qwh-demo":        "small quasigroup-with-holes board including an intercalate",
		"smti-demo":       "2x2 stable matching with ties and incomplete lists",
	}
}

// ProblemDescription gives a description of every problem instance by name.
func (man *Manager) ProblemDescription() string {
	keys := make([]string, 0, len(man.probd))
	for k := range man.probd {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := fmt.Sprintln("Problem Description:")
	for _, k := range keys {
		s += fmt.Sprintf("%s :\n  %s\n", k, man.probd[k])
	}
	return s
}

/*
AddAct adds an Action instance creator to man for later use, named name
and described by desc. If the name already exists it is not added and an
error is returned.
*/
func (man *Manager) AddAct(name, desc string, a CreateAct) error {
	if man.actd[name] != "" {
		return fmt.Errorf("attempted to add %s to an Action creator that exists", name)
	}
	man.actd[name] = desc
	man.addedAct[name] = a
	return nil
}

// loadActDescription loads the description of the installed actions.
func (man *Manager) loadActDescription() {
	man.actd = map[string]string{}
}

// ActDescription gives a description of Action by name.
func (man *Manager) ActDescription() string {
	keys := make([]string, 0, len(man.actd))
	for k := range man.actd {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := fmt.Sprintln("Action Description:")
	for _, k := range keys {
		s += fmt.Sprintf("%s :\n  %s\n", k, man.actd[k])
	}
	return s
}

/*
SelectActs selects a list of actions by name to be used by man. Each
Action is slotted into the runs where it has a capability to act.
*/
func (man *Manager) SelectActs(ac ...string) error {
	for _, name := range ac {
		var a Act = man.addedAct[name]
		if a == nil {
			return fmt.Errorf("action %s not found", name)
		}
		// as in psokit.SelectActs, the added creator is itself slotted in
		// directly against the Act* interfaces; CreateAct.Create exists
		// for parity with CreateProblem but is not invoked here.
		if ai, ok := a.(ActInit); ok {
			man.actInit = append(man.actInit, ai)
		}
		if ari, ok := a.(ActRunInit); ok {
			man.actRunInit = append(man.actRunInit, ari)
		}
		if au, ok := a.(ActUpdate); ok {
			man.actUpdate = append(man.actUpdate, au)
		}
		if ad, ok := a.(ActData); ok {
			man.actData = append(man.actData, ad)
		}
		if ar, ok := a.(ActResult); ok {
			man.actResult = append(man.actResult, ar)
		}
		if as, ok := a.(ActSummary); ok {
			man.actSummary = append(man.actSummary, as)
		}
	}
	return nil
}

// built-in demo instances, small enough to solve reliably and, for qwh,
// hand-verified against the propagator in qwh's own test suite.

const quasigroupDemoBoard = `order 4
0 -1 2 3
-1 3 0 2
2 0 -1 1
3 -1 1 0
`

const qwhDemoBoard = `order 4
-1 -1 2 3
-1 -1 3 2
2 3 0 1
3 2 1 0
`

const smtiDemoProblem = `2
1 2
1 2
1 2
1 2
`
