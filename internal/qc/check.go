package qc

import "iter"

// Check is a named, zero-argument verdict producer. Run returns a finite
// sequence; single-result checks yield exactly one element.
type Check struct {
	Name string
	Run  func() iter.Seq[Result]
}

// Suite is a named list of checks bound to the data they inspect.
type Suite interface {
	Name() string
	Checks() []Check
}

// Single wraps a check producing exactly one result.
func Single(name string, fn func() Result) Check {
	return Check{
		Name: name,
		Run: func() iter.Seq[Result] {
			return func(yield func(Result) bool) {
				yield(fn())
			}
		},
	}
}

// FanOut wraps a check producing one result per sub-channel.
func FanOut(name string, fn func() iter.Seq[Result]) Check {
	return Check{Name: name, Run: fn}
}
