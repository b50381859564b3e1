package constants_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/servicemap/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	dir := filepath.Join(os.TempDir(), "servicemap-example")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	file := filepath.Join(dir, constants.DefaultPricesFile)
	if err := os.WriteFile(file, []byte("Service,Unit,Median,Min,Max,Level\n"), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_matching shows the matching defaults
func Example_matching() {
	fmt.Printf("Min similarity: %.1f\n", constants.DefaultMinSimilarity)
	fmt.Printf("Activities per catalog: %d\n", constants.DefaultActivityLimit)
	// Output:
	// Min similarity: 0.6
	// Activities per catalog: 3
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.LoadTimeout)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	fmt.Printf("Load timeout: %v (deadline set: %v)\n", constants.LoadTimeout, hasDeadline)
	// Output:
	// Load timeout: 1m0s (deadline set: true)
}
