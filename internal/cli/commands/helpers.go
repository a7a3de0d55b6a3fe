package commands

import (
	"bufio"
	"fmt"
	"strings"
)

// confirm asks a yes/no question on Out and reads the answer from In.
// Only "y" and "yes" (any case) proceed.
func confirm(question string) bool {
	fmt.Fprintf(Out, "%s [y/N]: ", question)
	r := bufio.NewReader(In)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// stars renders a 1..5 rating the way the site shows it.
func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}
