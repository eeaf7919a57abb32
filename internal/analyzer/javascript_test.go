package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsFixture = `import { Router } from './router';
import axios from 'axios';

export const VERSION = '1.0';

export class UserService extends BaseService implements Serializable {
  repo = null;

  constructor(repo) {
    this.repo = repo;
  }

  async findUser(id, options = {}) {
    const user = await this.repo.lookup(id);
    return format(user);
  }

  static create() {
    return new UserService(defaultRepo());
  }
}

export default function format(user) {
  return user.name;
}

const helper = async (a, b) => {
  return a + b;
};
`

func extractJS(t *testing.T, path, src string) Facts {
	t.Helper()
	return Extract(path, strings.Split(src, "\n"), "javascript")
}

func TestJavaScriptImports(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	assert.Equal(t, []string{"./router", "axios"}, f.Imports)
	// Only relative imports become dependency targets, resolved against the
	// importing file's directory.
	assert.Equal(t, []string{"/src/router"}, f.Dependencies)
}

func TestJavaScriptExports(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)
	assert.Equal(t, []string{"VERSION", "UserService", "format"}, f.Exports)
}

func TestJavaScriptClass(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	require.Len(t, f.Classes, 1)
	cls := f.Classes[0]
	assert.Equal(t, "UserService", cls.Name)
	assert.Equal(t, 6, cls.Line)
	assert.Equal(t, "BaseService", cls.Extends)
	assert.Equal(t, []string{"Serializable"}, cls.Implements)
	assert.Equal(t, []string{"constructor", "findUser", "create"}, cls.Methods)
	assert.Equal(t, []string{"repo"}, cls.Properties)
}

func TestJavaScriptMethods(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	require.Len(t, f.Methods, 3)

	find := func(name string) Method {
		for _, m := range f.Methods {
			if m.Name == name {
				return m
			}
		}
		t.Fatalf("method %s not extracted", name)
		return Method{}
	}

	findUser := find("findUser")
	assert.Equal(t, "UserService", findUser.Class)
	assert.True(t, findUser.Async)
	assert.False(t, findUser.Static)
	assert.Equal(t, "public", findUser.Visibility)
	require.Len(t, findUser.Params, 2)
	assert.Equal(t, "id", findUser.Params[0].Name)
	assert.Equal(t, "options", findUser.Params[1].Name)
	assert.True(t, findUser.Params[1].Optional)

	create := find("create")
	assert.True(t, create.Static)
	assert.False(t, create.Async)
}

func TestJavaScriptFunctions(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	require.Len(t, f.Functions, 2)
	assert.Equal(t, "format", f.Functions[0].Name)
	assert.False(t, f.Functions[0].Async)

	assert.Equal(t, "helper", f.Functions[1].Name)
	assert.True(t, f.Functions[1].Async)
	require.Len(t, f.Functions[1].Params, 2)
	assert.Equal(t, "a", f.Functions[1].Params[0].Name)
}

func TestJavaScriptVariables(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	// helper is classified as an arrow function, not a variable.
	require.Len(t, f.Variables, 1)
	assert.Equal(t, "VERSION", f.Variables[0].Name)
	assert.Equal(t, "module", f.Variables[0].Scope)
}

func TestJavaScriptCallSites(t *testing.T) {
	f := extractJS(t, "/src/user.js", jsFixture)

	var callees []string
	for _, c := range f.Calls {
		callees = append(callees, c.To)
	}
	assert.Contains(t, callees, "format")
	assert.Contains(t, callees, "defaultRepo")
	assert.NotContains(t, callees, "if")
}

func TestTypeScriptAnnotations(t *testing.T) {
	src := `export class Repo {
  private cache: Map<string, User> = new Map();

  public async fetch(id: string, force?: boolean): Promise<User> {
    return this.load(id);
  }
}
`
	f := Extract("/src/repo.ts", strings.Split(src, "\n"), "typescript")

	require.Len(t, f.Methods, 1)
	m := f.Methods[0]
	assert.Equal(t, "fetch", m.Name)
	assert.Equal(t, "public", m.Visibility)
	assert.True(t, m.Async)
	require.Len(t, m.Params, 2)
	assert.Equal(t, "string", m.Params[0].Type)
	assert.True(t, m.Params[1].Optional)

	require.Len(t, f.Classes, 1)
	assert.Equal(t, []string{"cache"}, f.Classes[0].Properties)
}

func TestUnknownLanguageYieldsEmptyFacts(t *testing.T) {
	f := Extract("/src/main.rs", strings.Split("fn main() {}", "\n"), "rust")
	assert.Empty(t, f.Classes)
	assert.Empty(t, f.Functions)
	assert.Empty(t, f.Imports)
	assert.Empty(t, f.Calls)
}
