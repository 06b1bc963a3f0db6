// Package command runs the optional post-run shell command.
//
// The command is typically used to sample the benchmark's own memory use
// while every unit is still alive, e.g.
//
//	-command 'ps -o rss= -p {pid}'
//
// Every occurrence of {pid} is replaced with the current process id.
package command

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// PIDToken is replaced by the benchmark's process id.
const PIDToken = "{pid}"

// ErrCommandFailed reports a command that exited unsuccessfully.
var ErrCommandFailed = errors.New("post-run command failed")

// Shell runs commands. Tests may replace it.
var Shell = "sh"

// Expand substitutes pid for every PIDToken in cmd.
func Expand(cmd string, pid int) string {
	return strings.ReplaceAll(cmd, PIDToken, strconv.Itoa(pid))
}

// Run expands cmd for the current process and runs it with `sh -c`,
// inheriting stdin, stdout and stderr.
func Run(cmd string) error {
	c := exec.Command(Shell, "-c", Expand(cmd, os.Getpid()))
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: child exited with status: %s", ErrCommandFailed, exitErr.ProcessState)
		}
		return fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}
	return nil
}
