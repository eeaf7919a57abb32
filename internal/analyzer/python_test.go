package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pyFixture = `import os
import json, hashlib
from collections import OrderedDict

DEFAULT_LIMIT = 100

class Repository:
    def __init__(self, path):
        self.path = path

    async def load(self, key, default=None):
        data = read_blob(self.path, key)
        return json.loads(data)

class Cache(Repository, Serializable):
    def get(self, key):
        return self.store.fetch(key)

def read_blob(path, key):
    return open(path).read()
`

func extractPy(t *testing.T, src string) Facts {
	t.Helper()
	return Extract("/app/repo.py", strings.Split(src, "\n"), "python")
}

func TestPythonImports(t *testing.T) {
	f := extractPy(t, pyFixture)
	assert.Equal(t, []string{"os", "json", "hashlib", "collections"}, f.Imports)
}

func TestPythonClasses(t *testing.T) {
	f := extractPy(t, pyFixture)

	require.Len(t, f.Classes, 2)

	repo := f.Classes[0]
	assert.Equal(t, "Repository", repo.Name)
	assert.Equal(t, 7, repo.Line)
	assert.Empty(t, repo.Extends)
	assert.Equal(t, []string{"__init__", "load"}, repo.Methods)

	cache := f.Classes[1]
	assert.Equal(t, "Cache", cache.Name)
	assert.Equal(t, "Repository", cache.Extends)
	assert.Equal(t, []string{"Serializable"}, cache.Implements)
	assert.Equal(t, []string{"get"}, cache.Methods)
}

func TestPythonMethodVsFunction(t *testing.T) {
	f := extractPy(t, pyFixture)

	require.Len(t, f.Methods, 3)
	assert.Equal(t, "__init__", f.Methods[0].Name)
	assert.Equal(t, "Repository", f.Methods[0].Class)

	load := f.Methods[1]
	assert.Equal(t, "load", load.Name)
	assert.True(t, load.Async)
	require.Len(t, load.Params, 3)
	assert.Equal(t, "self", load.Params[0].Name)
	assert.Equal(t, "None", load.Params[2].Default)

	assert.Equal(t, "get", f.Methods[2].Name)
	assert.Equal(t, "Cache", f.Methods[2].Class)

	// read_blob sits at column zero, at the class indent baseline, so it is a
	// top-level function and closes the class body.
	require.Len(t, f.Functions, 1)
	assert.Equal(t, "read_blob", f.Functions[0].Name)
	assert.Equal(t, 19, f.Functions[0].Line)
}

func TestPythonModuleVariables(t *testing.T) {
	f := extractPy(t, pyFixture)

	require.Len(t, f.Variables, 1)
	assert.Equal(t, "DEFAULT_LIMIT", f.Variables[0].Name)
	assert.Equal(t, "module", f.Variables[0].Scope)
}

func TestPythonCallSites(t *testing.T) {
	f := extractPy(t, pyFixture)

	var callees []string
	for _, c := range f.Calls {
		callees = append(callees, c.To)
	}
	assert.Contains(t, callees, "read_blob")
	assert.Contains(t, callees, "json.loads")
	assert.Contains(t, callees, "store.fetch")
	assert.Contains(t, callees, "open")
}
