package zkp

import (
	"math/big"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"
)

// LinearCircuit declares the relation y = a*x + b.
//
// X is the prover's secret witness, Y the public input, and Tmp the derived
// intermediate a*x; A and B are circuit constants shared by both parties. A
// placeholder instance (no values set) compiles to exactly the same constraint
// system as an assigned one: 2 constraints over 3 variables. The proving key
// derived from the placeholder therefore stays valid for every concrete
// assignment of the relation.
type LinearCircuit struct {
	X   frontend.Variable `gnark:"x"`
	Tmp frontend.Variable `gnark:"tmp"`
	Y   frontend.Variable `gnark:"y,public"`

	A *big.Int `gnark:"-"`
	B *big.Int `gnark:"-"`
}

// Define lowers the relation to constraints:
//
//	a*x       = tmp
//	tmp + b   = y
func (c *LinearCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Mul(c.X, c.A), c.Tmp)
	api.AssertIsEqual(api.Add(c.Tmp, c.B), c.Y)
	return nil
}

// Placeholder returns a shape-only instance used for key generation. Only the
// relation constants are set; indexing inspects topology, never values.
func (p Params) Placeholder() *LinearCircuit {
	return &LinearCircuit{A: p.aBig(), B: p.bBig()}
}

// Assign returns a fully-assigned instance for the witness x and public input
// y. The intermediate tmp = a*x is derived here, never supplied by the caller.
func (p Params) Assign(x, y fr.Element) *LinearCircuit {
	var tmp fr.Element
	tmp.Mul(&p.A, &x)

	c := p.Placeholder()
	c.X = x.BigInt(new(big.Int))
	c.Tmp = tmp.BigInt(new(big.Int))
	c.Y = y.BigInt(new(big.Int))
	return c
}

// missing reports which assignment, if any, is absent. Proving demands all
// three; a placeholder is only valid for indexing.
func (c *LinearCircuit) missing() error {
	switch {
	case c.X == nil:
		return errors.Wrap(ErrAssignmentMissing, "witness x")
	case c.Tmp == nil:
		return errors.Wrap(ErrAssignmentMissing, "intermediate tmp")
	case c.Y == nil:
		return errors.Wrap(ErrAssignmentMissing, "public input y")
	}
	return nil
}
