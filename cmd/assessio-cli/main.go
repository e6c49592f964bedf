package main

import "assessio/cmd/assessio-cli/cmd"

func main() {
	cmd.Execute()
}
