// Package cubetwist provides the state and motion engine for a virtual
// NxNxN twisty puzzle (2x2x2 up to 4x4x4).
//
// # Features
//
//   - Cubie model with exact lattice positions and orientations
//   - Slice rotations about any world axis
//   - A sequential move scheduler driven by an external clock
//   - Solved-state detection that ignores the global orientation
//   - Camera-relative keyboard and drag controls
//
// # Quick Start
//
// Build a puzzle and turn slices directly:
//
//	p, err := cubetwist.NewPuzzle(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cubetwist.Apply(p, cubetwist.NewMove(cubetwist.AxisX, 1, 1))
//	fmt.Println("Solved:", cubetwist.IsSolved(p))
//
// # Scheduling Moves
//
// Moves normally go through a Scheduler so that only one rotation is in
// flight at a time. The caller owns the clock:
//
//	s := cubetwist.NewScheduler(p)
//	s.OnSettled(func() {
//	    fmt.Println("Solved:", cubetwist.IsSolved(p))
//	})
//	s.Enqueue(cubetwist.NewMove(cubetwist.AxisY, 0, -1))
//
//	// Every frame:
//	s.Advance(16 * time.Millisecond)
//
// # Camera-Relative Controls
//
// A Translator turns a key or a drag into a concrete move using the
// current camera:
//
//	t := cubetwist.NewTranslator(3)
//	align := cubetwist.Resolve(camera)
//	if m, ok := t.TranslateKey("w", align); ok {
//	    s.Enqueue(m)
//	}
//
// The Game type bundles all of the above together with scrambling, the
// solve timer and win detection.
package cubetwist
