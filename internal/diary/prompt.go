package diary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter is the interactive surface of the tool. The stdin
// implementation is swapped out in tests.
type Prompter interface {
	// Line asks a question and returns one trimmed line of input.
	Line(prompt string) (string, error)
	// Confirm asks a y/N question; anything but "y" is false.
	Confirm(prompt string) (bool, error)
	// Body reads diary bullet lines until two consecutive blank lines.
	Body() ([]string, error)
}

type stdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) Prompter {
	return &stdinPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *stdinPrompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *stdinPrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

func (p *stdinPrompter) Body() ([]string, error) {
	fmt.Fprintln(p.out, "\nAdd your diary content below.")
	fmt.Fprintln(p.out, "Start each activity with '- ' (dash space)")
	fmt.Fprintln(p.out, "Use tabs for sub-bullets")
	fmt.Fprintln(p.out, "Press Enter twice to finish:")
	fmt.Fprintln(p.out)

	var lines []string
	emptyRun := 0

	for emptyRun < 2 {
		line, err := p.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			emptyRun++
		} else {
			emptyRun = 0
		}
		lines = append(lines, line)
	}

	// Drop the terminating blank lines.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines, nil
}
