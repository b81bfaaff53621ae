package main

import "venue-intelligence/cmd/venuectl/cmd"

func main() {
	cmd.Execute()
}
