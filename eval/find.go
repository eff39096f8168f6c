package eval

import "github.com/bcsgh/tbd/ast"

// nodeCollector accumulates every node reachable from the roots it
// visits (itself included), mirroring a visitor that walks the whole
// subtree regardless of which node types the caller actually wants —
// callers filter the result by type assertion.
type nodeCollector struct {
	nodes []ast.Node
}

func (c *nodeCollector) sink(n ast.Node) { c.nodes = append(c.nodes, n) }

func (c *nodeCollector) VisitLiteral(n *ast.Literal) bool { c.sink(n); return true }
func (c *nodeCollector) VisitNamed(n *ast.Named) bool     { c.sink(n); return true }

func (c *nodeCollector) VisitEquality(n *ast.Equality) bool {
	c.sink(n)
	return n.Left.Accept(c) && n.Right.Accept(c)
}

func (c *nodeCollector) VisitPower(n *ast.Power) bool {
	c.sink(n)
	return n.Base.Accept(c)
}

func (c *nodeCollector) VisitProduct(n *ast.Product) bool {
	c.sink(n)
	return n.Left.Accept(c) && n.Right.Accept(c)
}

func (c *nodeCollector) VisitQuotient(n *ast.Quotient) bool {
	c.sink(n)
	return n.Left.Accept(c) && n.Right.Accept(c)
}

func (c *nodeCollector) VisitSum(n *ast.Sum) bool {
	c.sink(n)
	return n.Left.Accept(c) && n.Right.Accept(c)
}

func (c *nodeCollector) VisitDifference(n *ast.Difference) bool {
	c.sink(n)
	return n.Left.Accept(c) && n.Right.Accept(c)
}

func (c *nodeCollector) VisitNegative(n *ast.Negative) bool {
	c.sink(n)
	return n.Operand.Accept(c)
}

func (c *nodeCollector) VisitDefine(n *ast.Define) bool               { c.sink(n); return true }
func (c *nodeCollector) VisitSpecification(n *ast.Specification) bool { c.sink(n); return true }
func (c *nodeCollector) VisitUnitExp(n *ast.UnitExp) bool             { c.sink(n); return true }
func (c *nodeCollector) VisitUnitDef(n *ast.UnitDef) bool             { c.sink(n); return true }

func (c *nodeCollector) VisitDocument(n *ast.Document) bool {
	c.sink(n)
	for _, d := range n.Defines {
		d.Accept(c)
	}
	for _, s := range n.Specifications {
		s.Accept(c)
	}
	for _, e := range n.Equalities {
		e.Accept(c)
	}
	return true
}

func namedIn(n ast.Node) []*ast.Named {
	c := &nodeCollector{}
	n.Accept(c)
	var out []*ast.Named
	for _, x := range c.nodes {
		if named, ok := x.(*ast.Named); ok {
			out = append(out, named)
		}
	}
	return out
}

func expressionsIn(n ast.Node) []ast.Node {
	c := &nodeCollector{}
	n.Accept(c)
	return c.nodes
}
