// Command hash-generator prints a bcrypt hash for a password read from
// standard input, using the same hasher as the server. It is handy for
// seeding accounts directly in the database.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost (4-31)")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *cost); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run hashes each non-empty line of in and writes one hash per line to out.
func run(in io.Reader, out io.Writer, cost int) error {
	hasher := auth.NewBcryptHasher(cost)

	scanner := bufio.NewScanner(in)
	hashed := 0
	for scanner.Scan() {
		password := strings.TrimRight(scanner.Text(), "\r")
		if password == "" {
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password on line %d: %w", hashed+1, err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
		hashed++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if hashed == 0 {
		return errors.New("no password given on standard input")
	}
	return nil
}
