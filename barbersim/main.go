// The barbersim command runs and reports on sleeping-barber simulations.
package main

import (
	"github.com/sarchlab/barbersim/barbersim/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
