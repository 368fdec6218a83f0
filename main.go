package main

import "github.com/checkdisout/checkdisout/cmd"

func main() {
	cmd.Execute()
}
