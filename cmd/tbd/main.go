package main

import "github.com/bcsgh/tbd/cmd/tbd/cmd"

func main() {
	cmd.Execute()
}
