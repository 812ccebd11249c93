package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchAndBound_KnapsackStyleOptimum(t *testing.T) {
	m := NewBranchAndBound()
	a := m.AddBinaryVariable("a")
	b := m.AddBinaryVariable("b")
	c := m.AddBinaryVariable("c")

	m.AddLinearConstraint([]Term{{Var: a, Coef: 5}, {Var: b, Coef: 4}, {Var: c, Coef: 3}}, LE, 7, "capacity")
	m.SetObjective([]Term{{Var: a, Coef: 10}, {Var: b, Coef: 8}, {Var: c, Coef: 5}})

	status, err := m.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)

	va, _ := m.ValueOf(a)
	vb, _ := m.ValueOf(b)
	vc, _ := m.ValueOf(c)
	assert.Equal(t, 0, va)
	assert.Equal(t, 1, vb)
	assert.Equal(t, 1, vc)
}

func TestBranchAndBound_Infeasible(t *testing.T) {
	m := NewBranchAndBound()
	a := m.AddBinaryVariable("a")
	b := m.AddBinaryVariable("b")
	m.AddLinearConstraint([]Term{{Var: a, Coef: 1}}, EQ, 1, "must-pick-a")
	m.AddLinearConstraint([]Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}}, LE, 0, "impossible")
	m.SetObjective([]Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}})

	status, err := m.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, status)
}

func TestBranchAndBound_EqualityConstraint(t *testing.T) {
	m := NewBranchAndBound()
	x := m.AddBinaryVariable("x")
	y := m.AddBinaryVariable("y")
	m.AddLinearConstraint([]Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, EQ, 0, "x-equals-y")
	m.SetObjective([]Term{{Var: x, Coef: 3}, {Var: y, Coef: 3}})

	status, err := m.Solve(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)
	vx, _ := m.ValueOf(x)
	vy, _ := m.ValueOf(y)
	assert.Equal(t, vx, vy)
	assert.Equal(t, 1, vx)
}

func TestBranchAndBound_TimeLimit(t *testing.T) {
	m := NewBranchAndBound()
	var vars []Var
	for i := 0; i < 25; i++ {
		vars = append(vars, m.AddBinaryVariable("v"))
	}
	var terms []Term
	for _, v := range vars {
		terms = append(terms, Term{Var: v, Coef: 1})
	}
	m.AddLinearConstraint(terms, LE, 12, "spread-thin")
	m.SetObjective(terms)

	status, err := m.Solve(context.Background(), time.Nanosecond)
	require.NoError(t, err)
	assert.Equal(t, StatusTimeLimit, status)
}
