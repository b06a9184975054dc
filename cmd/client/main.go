package main

import "dresscode/cmd/client/cmd"

func main() {
	cmd.Execute()
}
