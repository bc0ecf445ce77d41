//go:build ignore

package main

import (
	"fmt"
	"os"
	"os/exec"
)

func main() {
	fmt.Println("Running all tests for shortlink-allocator...")

	// The allocator is exercised concurrently, so always run with the race detector
	cmd := exec.Command("go", "test", "-race", "-v", "-cover", "./...")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Tests failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nAll tests passed!")

	fmt.Println("\nRunning benchmarks...")
	benchCmd := exec.Command("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
	benchCmd.Stdout = os.Stdout
	benchCmd.Stderr = os.Stderr

	if err := benchCmd.Run(); err != nil {
		fmt.Printf("Benchmarks failed: %v\n", err)
	}

	fmt.Println("\nTest run complete!")
}
