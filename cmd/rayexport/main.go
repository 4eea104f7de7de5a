// Command rayexport converts waypoint lists into Raymarine export files.
package main

import (
	"fmt"
	"os"
)

// Set by compiler via -ldflags
var version = "dev"

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
