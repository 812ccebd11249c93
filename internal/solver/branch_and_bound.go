package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

type constraint struct {
	coefs map[int]float64
	op    Op
	rhs   float64
	name  string
}

// BranchAndBound is an exact in-process reference implementation of Model.
// It explores the 0/1 assignment tree depth-first, pruning branches in
// which some constraint can no longer be satisfied and branches whose
// objective upper bound cannot beat the best feasible solution found so
// far. It proves optimality by exhausting the tree; if the deadline is
// reached first it reports StatusTimeLimit rather than guessing.
type BranchAndBound struct {
	names       []string
	objective   map[int]float64
	constraints []constraint

	solved bool
	values []int
}

// NewBranchAndBound returns an empty model ready for variable registration.
func NewBranchAndBound() *BranchAndBound {
	return &BranchAndBound{objective: make(map[int]float64)}
}

func (m *BranchAndBound) AddBinaryVariable(name string) Var {
	id := len(m.names)
	m.names = append(m.names, name)
	return Var{id: id}
}

func (m *BranchAndBound) AddLinearConstraint(lhs []Term, op Op, rhs float64, name string) {
	c := constraint{coefs: make(map[int]float64, len(lhs)), op: op, rhs: rhs, name: name}
	for _, t := range lhs {
		c.coefs[t.Var.id] += t.Coef
	}
	m.constraints = append(m.constraints, c)
}

func (m *BranchAndBound) SetObjective(terms []Term) {
	m.objective = make(map[int]float64, len(terms))
	for _, t := range terms {
		m.objective[t.Var.id] += t.Coef
	}
}

func (m *BranchAndBound) ValueOf(v Var) (int, error) {
	if !m.solved {
		return 0, errors.New("solver: ValueOf called before a successful Solve")
	}
	if v.id < 0 || v.id >= len(m.values) {
		return 0, fmt.Errorf("solver: variable %d out of range", v.id)
	}
	return m.values[v.id], nil
}

// Solve runs the branch-and-bound search. It returns StatusInfeasible only
// after exhausting the whole tree without finding any feasible leaf, and
// StatusTimeLimit if the deadline elapses first.
func (m *BranchAndBound) Solve(ctx context.Context, timeout time.Duration) (Status, error) {
	n := len(m.names)
	deadline := time.Now().Add(timeout)

	assignment := make([]int, n)
	bestAssignment := make([]int, n)
	bestObjective := math.Inf(-1)
	foundFeasible := false
	timedOut := false

	remainingUpperBound := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		remainingUpperBound[i] = remainingUpperBound[i+1] + positivePart(m.objective[i])
	}

	step := 0
	checkDeadline := func() bool {
		step++
		if step&255 != 0 {
			return false
		}
		if err := ctx.Err(); err != nil {
			return true
		}
		return time.Now().After(deadline)
	}

	var currentObjective float64

	var dfs func(index int) bool // returns true to abort (timeout)
	dfs = func(index int) bool {
		if checkDeadline() {
			return true
		}
		if !m.feasible(assignment, index) {
			return false // prune: some constraint can no longer be satisfied
		}
		if index == n {
			foundFeasible = true
			if currentObjective > bestObjective {
				bestObjective = currentObjective
				copy(bestAssignment, assignment)
			}
			return false
		}
		if currentObjective+remainingUpperBound[index] <= bestObjective {
			return false // prune: cannot beat the incumbent
		}

		// Branch on 1 first: most constraints here are capacity-style
		// (prefers placing variables) so this tends to find a good
		// incumbent early, sharpening the bound for the 0-branch.
		for _, bit := range [2]int{1, 0} {
			assignment[index] = bit
			currentObjective += float64(bit) * m.objective[index]
			if dfs(index + 1) {
				currentObjective -= float64(bit) * m.objective[index]
				assignment[index] = 0
				return true
			}
			currentObjective -= float64(bit) * m.objective[index]
		}
		assignment[index] = 0
		return false
	}

	timedOut = dfs(0)

	if timedOut {
		return StatusTimeLimit, nil
	}
	if !foundFeasible {
		return StatusInfeasible, nil
	}
	m.values = bestAssignment
	m.solved = true
	return StatusOptimal, nil
}

// feasible reports whether every constraint can still hold when variables
// [0, assigned) take their values from assignment and the rest are free to
// be 0 or 1. With assigned == len(assignment) it is an exact check.
func (m *BranchAndBound) feasible(assignment []int, assigned int) bool {
	for _, c := range m.constraints {
		var lo, hi float64
		for id, coef := range c.coefs {
			switch {
			case id < assigned:
				lo += coef * float64(assignment[id])
				hi += coef * float64(assignment[id])
			case coef > 0:
				hi += coef
			default:
				lo += coef
			}
		}
		switch c.op {
		case LE:
			if lo > c.rhs+epsilon {
				return false
			}
		case GE:
			if hi < c.rhs-epsilon {
				return false
			}
		case EQ:
			if lo > c.rhs+epsilon || hi < c.rhs-epsilon {
				return false
			}
		}
	}
	return true
}

func positivePart(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

const epsilon = 1e-6
