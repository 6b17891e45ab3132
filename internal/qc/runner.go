package qc

import (
	"fmt"
	"iter"
	"slices"

	"fip_qc/internal/logger"
)

// Report holds the results of one run grouped by suite. It is assembled
// after every suite has completed and is not modified afterwards.
type Report struct {
	// Suites lists suite names in execution order.
	Suites  []string
	BySuite map[string][]Result
}

// All yields every result in suite order.
func (r Report) All() iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, name := range r.Suites {
			for _, res := range r.BySuite[name] {
				if !yield(res) {
					return
				}
			}
		}
	}
}

// Counts tallies verdicts by status.
func (r Report) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for res := range r.All() {
		counts[res.Status]++
	}
	return counts
}

// OK reports whether no result failed or errored.
func (r Report) OK() bool {
	for res := range r.All() {
		if res.Failing() {
			return false
		}
	}
	return true
}

// Observer is notified of every result as soon as it is produced.
type Observer func(Result)

// Runner executes suites, isolating failures per check.
type Runner struct {
	log       *logger.Logger
	observers []Observer
}

// NewRunner creates a runner. A nil logger discards diagnostics.
func NewRunner(log *logger.Logger, observers ...Observer) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{log: log, observers: observers}
}

// Run executes every check of every suite. A check that panics produces an
// error result; its siblings and the remaining suites still run.
func (r *Runner) Run(suites ...Suite) Report {
	rep := Report{BySuite: make(map[string][]Result, len(suites))}
	for _, s := range suites {
		name := s.Name()
		if _, seen := rep.BySuite[name]; !seen {
			rep.Suites = append(rep.Suites, name)
		}
		for _, c := range s.Checks() {
			rep.BySuite[name] = append(rep.BySuite[name], r.runCheck(name, c)...)
		}
	}
	return rep
}

func (r *Runner) runCheck(suite string, c Check) (out []Result) {
	emit := func(res Result) {
		if res.Suite == "" {
			res.Suite = suite
		}
		if res.Check == "" {
			res.Check = c.Name
		}
		for _, obs := range r.observers {
			obs(res)
		}
		out = append(out, res)
	}

	defer func() {
		if p := recover(); p != nil {
			r.log.Errorw("qc_check_panicked", "suite", suite, "check", c.Name, "panic", p)
			emit(Result{Status: StatusError, Message: fmt.Sprintf("check panicked: %v", p)})
		}
	}()

	for res := range c.Run() {
		emit(res)
	}
	if len(out) == 0 {
		emit(Skip("check produced no results"))
	}
	return slices.Clip(out)
}
