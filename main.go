package main

import "github.com/oscar503sv/gestion-de-proyectos/cmd"

func main() {
	cmd.Execute()
}
