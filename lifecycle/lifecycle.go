// Package lifecycle models the forward-only status chains shared by the
// mutable SafetySight entities. A Machine is built from an ordered chain of
// statuses plus optional branch edges (e.g. a task can be cancelled from any
// non-terminal state); transitions only ever move forward.
package lifecycle

import "fmt"

// Status is the lifecycle stage of a mutable entity.
type Status string

// InvalidTransitionError is returned when a requested status change is not
// reachable from the record's current status.
type InvalidTransitionError struct {
	Entity string
	From   Status
	To     Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid status transition %q -> %q", e.Entity, e.From, e.To)
}

// Machine is an immutable description of one entity's status order.
type Machine struct {
	entity   string
	chain    []Status
	index    map[Status]int
	branches map[Status][]Status
}

// New builds a machine from the ordered chain of statuses. The first element
// is the initial status, the last is terminal. branches adds extra forward
// edges outside the chain (the target of a branch is always terminal here).
func New(entity string, chain []Status, branches map[Status][]Status) *Machine {
	index := make(map[Status]int, len(chain))
	for i, s := range chain {
		index[s] = i
	}
	m := &Machine{
		entity:   entity,
		chain:    chain,
		index:    index,
		branches: branches,
	}
	return m
}

// Entity returns the entity name the machine was built for.
func (m *Machine) Entity() string { return m.entity }

// Initial returns the status assigned to freshly created records.
func (m *Machine) Initial() Status { return m.chain[0] }

// Known reports whether s is a status this machine has ever heard of.
func (m *Machine) Known(s Status) bool {
	if _, ok := m.index[s]; ok {
		return true
	}
	for _, targets := range m.branches {
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (m *Machine) Terminal(s Status) bool {
	return len(m.Next(s)) == 0
}

// Next enumerates the statuses immediately reachable from s.
func (m *Machine) Next(s Status) []Status {
	var next []Status
	if i, ok := m.index[s]; ok && i+1 < len(m.chain) {
		next = append(next, m.chain[i+1])
	}
	next = append(next, m.branches[s]...)
	return next
}

// CanStep reports whether from -> to is a single legal forward step.
func (m *Machine) CanStep(from, to Status) bool {
	for _, s := range m.Next(from) {
		if s == to {
			return true
		}
	}
	return false
}

// Step validates a transition, returning *InvalidTransitionError when the
// step is not allowed. The caller mutates nothing on error.
func (m *Machine) Step(from, to Status) error {
	if !m.CanStep(from, to) {
		return &InvalidTransitionError{Entity: m.entity, From: from, To: to}
	}
	return nil
}
