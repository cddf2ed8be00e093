package ppt

import "errors"

var (
	ErrArity               = errors.New("ppt: slice arity must be 1, 2 or 3")
	ErrAlreadyInstantiated = errors.New("ppt: slice already instantiated")
	ErrDuplicateSlice      = errors.New("ppt: slice over these variables already exists")
	ErrUnknownVariable     = errors.New("ppt: unknown variable")
	ErrRepeatedVariable    = errors.New("ppt: variable repeated in slice")
)
