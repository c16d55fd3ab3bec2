package ui

import (
	"bufio"
	"os"
	"strings"
)

// ReadUserInput reads one line of input from stdin.
func ReadUserInput() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
