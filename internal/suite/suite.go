// Package suite registers fixtures into groups and dispatches them to a
// fixture.Runner in registration order.
package suite

import (
	"path/filepath"
	"runtime"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/fixture/internal/fixture"
)

// Func is a setup, teardown or test body. It receives the runner so it can
// report failures and record overrides.
type Func func(r *fixture.Runner)

// Case is one registered test.
type Case struct {
	Name   string
	Body   Func
	Ignore bool
	File   string
	Line   int
}

// Group is a set of cases sharing setup and teardown.
type Group struct {
	Name     string
	Setup    Func
	Teardown Func
	Cases    []Case
}

// Suite is an ordered list of groups run under one label.
type Suite struct {
	Label  string
	Groups []*Group
}

// New creates an empty suite.
func New(label string) *Suite {
	return &Suite{Label: normalize(label)}
}

// Group registers a new group and returns it for adding cases.
func (s *Suite) Group(name string, setup, teardown Func) *Group {
	g := &Group{Name: normalize(name), Setup: setup, Teardown: teardown}
	s.Groups = append(s.Groups, g)
	return g
}

// Test registers a case. The caller's file and line identify it in reports.
func (g *Group) Test(name string, body Func) *Group {
	file, line := caller()
	g.Cases = append(g.Cases, Case{Name: normalize(name), Body: body, File: file, Line: line})
	return g
}

// IgnoreTest registers a case that is counted as ignored and never run.
func (g *Group) IgnoreTest(name string, body Func) *Group {
	file, line := caller()
	g.Cases = append(g.Cases, Case{Name: normalize(name), Body: body, Ignore: true, File: file, Line: line})
	return g
}

// PrintableName renders the name shown in verbose output and failure
// reports.
func PrintableName(group, name string, ignored bool) string {
	prefix := "TEST("
	if ignored {
		prefix = "IGNORE_TEST("
	}
	return prefix + group + ", " + name + ")"
}

// Identity returns the reporting identity of c within g.
func (g *Group) Identity(c Case) fixture.Identity {
	return fixture.Identity{
		PrintableName: PrintableName(g.Name, c.Name, c.Ignore),
		Group:         g.Name,
		Name:          c.Name,
		File:          c.File,
		Line:          c.Line,
	}
}

// RunAll dispatches every case of every group to r. It has the signature
// fixture.Runner.Main expects.
func (s *Suite) RunAll(r *fixture.Runner) {
	for _, g := range s.Groups {
		for _, c := range g.Cases {
			id := g.Identity(c)
			if c.Ignore {
				r.IgnoreTest(id)
				continue
			}
			r.RunTest(bind(r, g.Setup), bind(r, c.Body), bind(r, g.Teardown), id)
		}
	}
}

// List returns the identities of all registered cases in run order.
func (s *Suite) List() []fixture.Identity {
	ids := []fixture.Identity{}
	for _, g := range s.Groups {
		for _, c := range g.Cases {
			ids = append(ids, g.Identity(c))
		}
	}
	return ids
}

// Len returns the number of registered cases.
func (s *Suite) Len() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Cases)
	}
	return n
}

func bind(r *fixture.Runner, fn Func) func() {
	if fn == nil {
		return nil
	}
	return func() { fn(r) }
}

// normalize puts names in NFC so the same name always produces the same
// bytes on the stream.
func normalize(s string) string {
	return norm.NFC.String(s)
}

func caller() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return filepath.Base(file), line
}
