// Command ddbb is a thin CLI wrapper around pkg/ddbb, useful for trying the
// solver against the bundled example problems without writing any Go.
package main

import "github.com/gitrdm/ddbb/cmd/ddbb/cmd"

func main() {
	cmd.Execute()
}
