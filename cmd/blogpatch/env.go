package main

import (
	"io"
	"os"
	"time"

	"github.com/daisuki-koshian/blogpatch/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	LoadConfig func(nameOrPath string) (*config.Config, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: config.LoadConfig,
	}
}
