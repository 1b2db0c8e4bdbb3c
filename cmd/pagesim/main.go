// Command pagesim replays page reference traces against a simulated virtual
// memory manager and reports how the page-replacement policy performed.
package main

import "github.com/sarchlab/pagesim/cmd/pagesim/cmd"

func main() {
	cmd.Execute()
}
