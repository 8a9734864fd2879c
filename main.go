package main

import "github.com/mj1618/macro-cli/cmd"

func main() {
	cmd.Execute()
}
