package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader binds a --file/-f flag and reads its input from the named file,
// or from stdin when the flag is unset or "-".
type FileReader[T any] struct {
	fileFlagValue string

	// Stdin is read when no file is given. Defaults to os.Stdin.
	Stdin *os.File
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file, - for stdin",
		Destination: &fr.fileFlagValue,
	}
}

// Set overrides the flag value.
func (fr *FileReader[T]) Set(path string) { fr.fileFlagValue = path }

// Path returns the flag value.
func (fr *FileReader[T]) Path() string { return fr.fileFlagValue }

// Provided reports whether input is available: a file was named or stdin is
// not a terminal.
func (fr *FileReader[T]) Provided() bool {
	if fr.fileFlagValue != "" && fr.fileFlagValue != "-" {
		return true
	}
	return !term.IsTerminal(int(fr.stdin().Fd()))
}

// Open returns the raw input stream. The caller closes it.
func (fr *FileReader[T]) Open() (io.ReadCloser, error) {
	if fr.fileFlagValue != "" && fr.fileFlagValue != "-" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	stdin := fr.stdin()
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	}
	return io.NopCloser(stdin), nil
}

// Read decodes the input as JSON into T.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	rc, err := fr.Open()
	if err != nil {
		return input, err
	}
	defer func() { _ = rc.Close() }()

	if err := json.NewDecoder(rc).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) stdin() *os.File {
	if fr.Stdin != nil {
		return fr.Stdin
	}
	return os.Stdin
}
