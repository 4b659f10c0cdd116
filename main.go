package main

import (
	cmd "github.com/spanworks/nerd/cmd/nerd"
)

func main() {
	cmd.Execute()
}
