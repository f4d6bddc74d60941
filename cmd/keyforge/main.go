package main

import "github.com/cheetahbyte/keyforge/cmd/keyforge/cmd"

func main() {
	cmd.Execute()
}
