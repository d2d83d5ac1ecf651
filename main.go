package main

import "github.com/metal-toolbox/afsync/cmd"

func main() {
	cmd.Execute()
}
