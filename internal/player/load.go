package player

import (
	"context"
	"os"
)

// ReadFile reads an input file for CompleteLoad. Failures are returned as
// *FileReadError.
func ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	return string(data), nil
}
