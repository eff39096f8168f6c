// Package selectsys picks the smallest solvable subset out of a forest of
// unresolved equations: the smallest set of expressions whose combined free
// variables can be assigned values (or checked) together, because the
// number of expressions in the set equals the number of variables it
// references.
//
// Finding the smallest SET of expressions isn't quite the goal either —
// what actually matters is minimizing the number of free variables (the
// degrees of freedom) a numeric solver has to guess. An equation relating
// only two variables pins one in terms of the other regardless of anything
// else in play, so such pairs are conflated before the search even starts.
package selectsys

import (
	"container/heap"
	"sort"

	"github.com/bcsgh/tbd/ast"
)

// FindSolution takes, for each still-unresolved expression, the set of
// free variable names it references, and returns the smallest-DOF subset
// of those expressions together with the variables they cover. ok is
// false if no expression set has as many variables as expressions.
func FindSolution(unsolved map[ast.Node]map[string]bool) (expResult map[ast.Node]bool, varResult map[string]bool, ok bool) {
	if len(unsolved) == 0 {
		return nil, nil, false
	}

	exps := make([]ast.Node, 0, len(unsolved))
	for n := range unsolved {
		exps = append(exps, n)
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i].Location().Less(exps[j].Location()) })

	varSet := map[string]bool{}
	for _, vars := range unsolved {
		for v := range vars {
			varSet[v] = true
		}
	}
	vars := make([]string, 0, len(varSet))
	for v := range varSet {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	varIdx := make(map[string]int, len(vars))
	for i, v := range vars {
		varIdx[v] = i
	}

	fromTo := make([][]int, len(exps))
	for i, n := range exps {
		ids := make([]int, 0, len(unsolved[n]))
		for v := range unsolved[n] {
			ids = append(ids, varIdx[v])
		}
		sort.Ints(ids)
		fromTo[i] = ids
	}

	from, to, found := findSolution(fromTo, len(vars))
	if !found {
		return nil, nil, false
	}

	expResult = make(map[ast.Node]bool, len(from))
	for _, i := range from {
		expResult[exps[i]] = true
	}
	varResult = make(map[string]bool, len(to))
	for _, i := range to {
		varResult[vars[i]] = true
	}
	return expResult, varResult, true
}

// findSolution runs the abstract, index-based search: fromTo[i] is the
// sorted list of variable ids equation i references; nVars is the total
// number of distinct variable ids.
func findSolution(fromTo [][]int, nVars int) (from, to []int, ok bool) {
	// An equation pinned to a single variable is its own answer.
	for i, vs := range fromTo {
		if len(vs) == 1 {
			return []int{i}, []int{vs[0]}, true
		}
	}

	working := conflatePairs(fromTo, nVars)

	pq := &solQueue{}
	heap.Init(pq)
	for i := range fromTo {
		heap.Push(pq, &sol{
			from:    []int{i},
			reduced: toSet(working[i]),
			to:      toSet(fromTo[i]),
		})
	}

	for pq.Len() > 0 {
		next := heap.Pop(pq).(*sol)
		if len(next.from) == len(next.to) {
			return next.from, setSlice(next.to), true
		}

		last := next.from[len(next.from)-1]
		for i := last + 1; i < len(fromTo); i++ {
			from := append(append([]int(nil), next.from...), i)
			reduced := unionSet(next.reduced, toSet(working[i]))
			to := unionSet(next.to, toSet(fromTo[i]))
			heap.Push(pq, &sol{from: from, reduced: reduced, to: to})
		}
	}

	return nil, nil, false
}

// conflatePairs maps every variable referenced by some equation with
// exactly two free variables onto its partner, repeating until no
// equation has exactly two variables left unconflated (collapsing one
// pair can turn a three-variable equation into a new two-variable one).
// The result is, for each equation, its variable ids rewritten through
// that mapping and de-duplicated.
func conflatePairs(fromTo [][]int, nVars int) [][]int {
	mapping := make([]int, nVars)
	for i := range mapping {
		mapping[i] = i
	}

	working := make([][]int, len(fromTo))
	for i, vs := range fromTo {
		working[i] = append([]int(nil), vs...)
	}

	for changed := true; changed; {
		changed = false

		for _, vs := range working {
			if len(vs) != 2 {
				continue
			}
			a, b := vs[0], vs[1]
			if mapping[a] < mapping[b] {
				mapping[b] = mapping[a]
			} else {
				mapping[a] = mapping[b]
			}
		}
		for i := range mapping {
			mapping[i] = mapping[mapping[i]]
		}

		for i, vs := range working {
			seen := map[int]bool{}
			n := make([]int, 0, len(vs))
			for _, v := range vs {
				m := mapping[v]
				if !seen[m] {
					seen[m] = true
					n = append(n, m)
				}
			}
			sort.Ints(n)
			if len(n) == 2 {
				changed = true
			}
			working[i] = n
		}
	}

	return working
}

func toSet(ids []int) map[int]bool {
	s := make(map[int]bool, len(ids))
	for _, i := range ids {
		s[i] = true
	}
	return s
}

func unionSet(a, b map[int]bool) map[int]bool {
	out := make(map[int]bool, len(a)+len(b))
	for i := range a {
		out[i] = true
	}
	for i := range b {
		out[i] = true
	}
	return out
}

func setSlice(s map[int]bool) []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// sol is one candidate subset of equations under consideration: the
// equations themselves (from, always held in increasing index order),
// the free variables they'd expand to after pair conflation (reduced —
// its size is what we're actually minimizing), and the raw variables
// they reference (to).
type sol struct {
	from    []int
	reduced map[int]bool
	to      map[int]bool
}

// solQueue is a best-first priority queue over candidates: fewer reduced
// variables wins, then fewer raw variables, then fewer equations.
type solQueue []*sol

func (q solQueue) Len() int { return len(q) }

func (q solQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if len(a.reduced) != len(b.reduced) {
		return len(a.reduced) < len(b.reduced)
	}
	if len(a.to) != len(b.to) {
		return len(a.to) < len(b.to)
	}
	return len(a.from) < len(b.from)
}

func (q solQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *solQueue) Push(x any) { *q = append(*q, x.(*sol)) }

func (q *solQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
