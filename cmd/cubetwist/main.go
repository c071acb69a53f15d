// cubetwist - twisty puzzles in the terminal.
package main

import (
	"github.com/SeamusWaldron/cubetwist/internal/cli"
)

func main() {
	cli.Execute()
}
