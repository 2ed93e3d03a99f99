package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Repository defines the history queries used by version resolution.
type Repository interface {
	CountCommitsSince(ctx context.Context, dir, since string) (int, error)
}

// Runner executes name with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// DefaultCommand is the git invocation used when none is configured.
const DefaultCommand = "git"

// ErrEmptyCommand is returned when the configured git command line is blank.
var ErrEmptyCommand = errors.New("git command is empty")

// GitRepository reads commit counts with `git rev-list`.
type GitRepository struct {
	// command is the git executable followed by its leading arguments.
	command []string
	// run executes the process.
	run Runner
}

// Option configures a GitRepository.
type Option func(*GitRepository)

// WithRunner replaces the process runner.
func WithRunner(run Runner) Option {
	return func(r *GitRepository) {
		r.run = run
	}
}

// NewGitRepository creates a repository from a shell-style command line such
// as `git -c safe.directory=*`. An empty line means DefaultCommand.
func NewGitRepository(commandLine string, opts ...Option) (*GitRepository, error) {
	if strings.TrimSpace(commandLine) == "" {
		commandLine = DefaultCommand
	}

	command, err := shellwords.Parse(commandLine)
	if err != nil {
		return nil, fmt.Errorf("parse git command %q: %w", commandLine, err)
	}

	if len(command) == 0 {
		return nil, ErrEmptyCommand
	}

	repo := &GitRepository{
		command: command,
		run:     execRunner,
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo, nil
}

// CountCommitsSince returns the number of commits reachable from HEAD
// committed at or after since, using dir as the working tree.
func (r *GitRepository) CountCommitsSince(ctx context.Context, dir, since string) (int, error) {
	args := make([]string, 0, len(r.command)+3)
	args = append(args, r.command[1:]...)
	args = append(args, "rev-list", "--count", "--since="+since, "HEAD")

	output, err := r.run(ctx, dir, r.command[0], args...)
	if err != nil {
		return 0, fmt.Errorf("run git rev-list: %w", err)
	}

	text := strings.TrimSpace(string(output))

	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parse commit count %q: %w", text, err)
	}

	return count, nil
}

// execRunner runs the process and folds its stderr into the returned error.
func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}

		return nil, err
	}

	return output, nil
}
