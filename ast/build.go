package ast

// NewProduct builds a Left*Right node whose location joins both operands.
func NewProduct(left, right Expression) *Product {
	return &Product{binaryExpression{Left: left, Right: right, Loc: Join(left.Location(), right.Location())}}
}

// NewQuotient builds a Left/Right node whose location joins both operands.
func NewQuotient(left, right Expression) *Quotient {
	return &Quotient{binaryExpression{Left: left, Right: right, Loc: Join(left.Location(), right.Location())}}
}

// NewSum builds a Left+Right node whose location joins both operands.
func NewSum(left, right Expression) *Sum {
	return &Sum{binaryExpression{Left: left, Right: right, Loc: Join(left.Location(), right.Location())}}
}

// NewDifference builds a Left-Right node whose location joins both operands.
func NewDifference(left, right Expression) *Difference {
	return &Difference{binaryExpression{Left: left, Right: right, Loc: Join(left.Location(), right.Location())}}
}
