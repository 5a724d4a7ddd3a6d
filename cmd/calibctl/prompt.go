// ABOUTME: Line-oriented prompts for interactive commands.
// ABOUTME: Supports defaults, yes/no questions, and integer answers with re-prompting.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errInputClosed is returned when input ends before a prompt is answered.
var errInputClosed = errors.New("input closed before all prompts were answered")

// prompter asks questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its terminator.
// A final line without a newline is still returned.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String asks for free text; an empty answer yields def.
func (p *prompter) String(prompt, def string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", prompt, def)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Bool asks a y/n question until it gets a valid answer.
func (p *prompter) Bool(prompt string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n): ", prompt)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter 'y' or 'n'.")
	}
}

// Count asks for a non-negative integer until it gets one.
func (p *prompter) Count(prompt string, def int) (int, error) {
	for {
		answer, err := p.String(prompt, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= 0 {
			return n, nil
		}
		fmt.Fprintln(p.out, "Invalid number. Please enter a whole number of 0 or more.")
	}
}
