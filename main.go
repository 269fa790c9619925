package main

import "github.com/inovacc/pokedex/cmd"

func main() {
	cmd.Execute()
}
