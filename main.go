package main

import "github.com/virus-evolution/samstats/cmd"

func main() {
	cmd.Execute()
}
