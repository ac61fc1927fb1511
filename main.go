package main

import "internship_backend/internals/commands"

func main() {
	commands.Execute()
}
