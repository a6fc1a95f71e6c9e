package dag

import (
	"github.com/pkg/errors"
)

var (
	ErrNotAcyclic     = errors.New("dependency graph is not acyclic")
	ErrAddAfterFreeze = errors.New("cannot add edges after the graph is frozen")
)
