package cubetwist

import "errors"

// Sentinel errors for the cubetwist package.
var (
	// Construction errors
	ErrInvalidSize = errors.New("cubetwist: puzzle size must be between 2 and 4")

	// Move errors
	ErrInvalidMove = errors.New("cubetwist: invalid move")
	ErrInvalidAxis = errors.New("cubetwist: invalid axis")

	// Control errors
	ErrInvalidLayout = errors.New("cubetwist: invalid key layout")

	// Game errors
	ErrBusy = errors.New("cubetwist: moves are still animating")
)
