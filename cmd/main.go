// cmd/main.go
package main

import cmd "github.com/mwiater/isoeval/cmd/isoeval"

// main starts the isoeval CLI application by delegating to the
// cobra root command defined in the isoeval package.
func main() {
	cmd.Execute()
}
