package main

import "github.com/pfrederiksen/school-names/internal/cli"

func main() {
	cli.Execute()
}
