package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := run(strings.NewReader("secret123\n\nтест123\r\n"), &out, bcrypt.MinCost)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[0]), []byte("secret123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(lines[1]), []byte("тест123")))

	cost, err := bcrypt.Cost([]byte(lines[0]))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestRun_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(strings.NewReader("\n"), &out, bcrypt.MinCost))
	assert.Empty(t, out.String())
}
