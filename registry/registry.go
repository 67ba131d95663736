// Package registry tracks which settings of which files the operations
// of one run declare, so that no two of them manage the same setting.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

var ErrDuplicate = errors.New("duplicate setting")

// DuplicateError is returned when a setting of a file is declared twice.
type DuplicateError struct {
	File    string
	Setting setpath.Path
	// Name is the name of the rejected declaration and Prior that of the
	// one registered first.
	Name  string
	Prior string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Cannot alias hocon_setting[%s] to [%q, %q]; already declared by hocon_setting[%s]",
		e.Name, e.File, e.Setting.String(), e.Prior)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

type key struct {
	file    string
	setting string
}

// Registry holds the (file, setting) pairs declared in one run. A zero
// Registry is not usable; use New.
type Registry struct {
	mu   sync.Mutex
	seen map[key]string
}

func New() *Registry {
	return &Registry{seen: map[key]string{}}
}

// Register records that the declaration name manages setting in file.
// It fails with a *DuplicateError if another declaration already did.
// Registrations are never removed.
func (r *Registry) Register(file string, setting setpath.Path, name string) error {
	k := key{file: filepath.Clean(file), setting: setting.String()}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prior, ok := r.seen[k]; ok {
		return &DuplicateError{File: k.file, Setting: setting, Name: name, Prior: prior}
	}
	r.seen[k] = name
	return nil
}
