package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"spanzip/spanzip/spanfile"
	"spanzip/spanzip/spanzip"
)

// Input acquisition failures, kept apart from decode errors.
var errRead = errors.New("cannot read input")

// Load the raw bytes to encode, from stdin when no path is given.
func loadInput(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
		path = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errRead, path, err)
	}
	return data, nil
}

// Load and check a container written by the pack command.
func loadContainer(path string) (*spanzip.Compressed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errRead, path, err)
	}
	c, err := spanfile.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Accept zero or one filename.
func optionalFile(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", fmt.Errorf("expected at most one file, got %d", len(args))
}
