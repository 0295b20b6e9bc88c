package publish

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotConfirmed is returned when the user declines an upload.
var ErrNotConfirmed = errors.New("upload not confirmed")

// Confirm asks the user on stdin to approve uploading count files to bucket.
// Stdin must be a terminal; non-interactive runs have to pass --yes instead.
func Confirm(count int, bucket string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("refusing to upload without confirmation; run interactively or pass --yes")
	}
	return confirm(os.Stdin, os.Stderr, count, bucket)
}

func confirm(in io.Reader, out io.Writer, count int, bucket string) error {
	fmt.Fprintf(out, "Upload %d file(s) to s3://%s? [y/N] ", count, bucket)

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return nil
	default:
		return ErrNotConfirmed
	}
}
