package main

import "evtc/cmd/evtc/cmd"

func main() {
	cmd.Execute()
}
