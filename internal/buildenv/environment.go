package buildenv

import (
	"os"
	"slices"

	domain "github.com/oshokin/fw-version/internal/domain/firmware"
)

// ProjectDirVar is the substitution variable holding the project root.
const ProjectDirVar = "PROJECT_DIR"

// Environment holds substitution variables and appended definitions.
type Environment struct {
	// vars are looked up before the process environment.
	vars map[string]string
	// defines is the global definitions collection, in append order.
	defines []domain.Define
}

// New creates an environment rooted at projectDir. An empty projectDir
// leaves PROJECT_DIR to the process environment.
func New(projectDir string) *Environment {
	env := &Environment{
		vars: make(map[string]string),
	}

	if projectDir != "" {
		env.Set(ProjectDirVar, projectDir)
	}

	return env
}

// Set assigns a substitution variable.
func (e *Environment) Set(name, value string) {
	e.vars[name] = value
}

// Subst expands $NAME and ${NAME} tokens using the environment's variables,
// then the process environment. Unknown names expand to an empty string.
func (e *Environment) Subst(text string) string {
	return os.Expand(text, func(name string) string {
		if value, ok := e.vars[name]; ok {
			return value
		}

		return os.Getenv(name)
	})
}

// AppendDefines adds definitions to the collection.
func (e *Environment) AppendDefines(defines ...domain.Define) {
	e.defines = append(e.defines, defines...)
}

// Defines returns a copy of the collected definitions.
func (e *Environment) Defines() []domain.Define {
	return slices.Clone(e.defines)
}
