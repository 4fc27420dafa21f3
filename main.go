package main

import (
	"log"
	"os"
	"os/exec"
)

func main() {
	// Run the server from cmd/server, forwarding any flags
	args := append([]string{"run", "./cmd/server"}, os.Args[1:]...)
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
