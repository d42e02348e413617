package main

import "nutrilog/cmd/nutrilog/cmd"

func main() {
	cmd.Execute()
}
