package buildenv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// headerDirPermissions is used when creating the header's parent directory.
	headerDirPermissions = 0o755
	// headerFilePermissions is used for the generated header.
	headerFilePermissions = 0o644
)

// WriteFlags writes one compiler flag per definition.
func (e *Environment) WriteFlags(w io.Writer) error {
	for _, define := range e.defines {
		if _, err := fmt.Fprintln(w, define.Flag()); err != nil {
			return fmt.Errorf("write flag %s: %w", define.Name, err)
		}
	}

	return nil
}

// RenderHeader returns the C header declaring every definition.
func (e *Environment) RenderHeader() []byte {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by fw-version. DO NOT EDIT.\n\n#pragma once\n\n")

	for _, define := range e.defines {
		fmt.Fprintf(&buf, "#define %s %s\n", define.Name, define.CLiteral())
	}

	return buf.Bytes()
}

// WriteHeader writes the header to path unless it already has the same
// content, so unchanged versions do not trigger recompilation.
// It reports whether the file was written.
func (e *Environment) WriteHeader(path string) (bool, error) {
	path = filepath.Clean(path)
	contents := e.RenderHeader()

	existing, err := os.ReadFile(path)

	switch {
	case err == nil && bytes.Equal(existing, contents):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read header: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), headerDirPermissions); err != nil {
		return false, fmt.Errorf("create header directory: %w", err)
	}

	if err = os.WriteFile(path, contents, headerFilePermissions); err != nil {
		return false, fmt.Errorf("write header: %w", err)
	}

	return true, nil
}
