package main

import "github.com/vjt/quectel-5g-tools/cmd"

func main() {
	cmd.Execute()
}
