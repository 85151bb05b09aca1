package player

import "fmt"

// FileReadError reports an input file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read input: %v", e.Err)
	}
	return fmt.Sprintf("read input %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
