package main

import (
	"io"
	"os"
	"time"

	markup "github.com/alnah/go-markup"
)

// PoolFactory creates the converter pool once the converter options are known.
type PoolFactory func(size int, opts ...markup.Option) (Pool, error)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and converter pool construction.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool PoolFactory
}

// DefaultEnv returns the production environment backed by a real converter pool.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
