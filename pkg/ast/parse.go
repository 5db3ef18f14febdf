package ast

// Primary and NonPrimary build an Expression with the primary flag set
// explicitly, matching the primary/non-primary distinction spec §4.1
// draws for paren-less call eligibility.

func Primary(body ExpressionBody, loc Location) *Expression {
	return &Expression{Body: body, Primary: true, Loc: loc}
}

func NonPrimary(body ExpressionBody, loc Location) *Expression {
	return &Expression{Body: body, Primary: false, Loc: loc}
}
