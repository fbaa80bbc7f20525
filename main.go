package main

import "model-diff/cmd"

func main() {
	cmd.Execute()
}
