package vars

import "errors"

var (
	ErrDuplicateName    = errors.New("vars: duplicate variable name")
	ErrUnknownVariable  = errors.New("vars: unknown variable")
	ErrNotSequence      = errors.New("vars: derivation base is not a sequence")
	ErrNotScalar        = errors.New("vars: derivation index is not an integer scalar")
	ErrUnknownRep       = errors.New("vars: unknown representation type")
	ErrOverlappingClass = errors.New("vars: variable belongs to more than one equality class")
)
