package main

import "github.com/pfrederiksen/cfb-tracker/internal/cli"

func main() {
	cli.Execute()
}
