package main

import "github.com/nfcsim/gocascade/cmd"

func main() {
	cmd.Execute()
}
