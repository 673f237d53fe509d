package main

import "github.com/jayakishorers/jersey-backend/internal/cmd"

func main() {
	cmd.Execute()
}
