// Package analyzer extracts structural facts from source files using
// line-anchored regular expressions. It is deliberately heuristic: there is no
// real parser behind it, and constructs such as braces inside string literals
// or nested definitions can produce noisy results. Downstream consumers treat
// the output as structural hints, not ground truth.
package analyzer

// Param is one parsed parameter of a function or method.
type Param struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Default  string `json:"default,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Class is a class declaration with the member names discovered in its body.
type Class struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Extends    string   `json:"extends,omitempty"`
	Implements []string `json:"implements,omitempty"`
	Methods    []string `json:"methods,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

// Function is a top-level function declaration.
type Function struct {
	Name   string  `json:"name"`
	Line   int     `json:"line"`
	Params []Param `json:"params,omitempty"`
	Async  bool    `json:"async,omitempty"`
}

// Method is a function declared inside a class body.
type Method struct {
	Class      string  `json:"class"`
	Name       string  `json:"name"`
	Line       int     `json:"line"`
	Params     []Param `json:"params,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Static     bool    `json:"static,omitempty"`
	Async      bool    `json:"async,omitempty"`
}

// Variable is a named binding outside any class body.
type Variable struct {
	Name  string `json:"name"`
	Line  int    `json:"line"`
	Scope string `json:"scope"`
}

// CallSite is a naive call expression match. From starts out as the
// containing file path; call-range attribution may rewrite it to the
// enclosing function or Class::method.
type CallSite struct {
	From string `json:"from"`
	To   string `json:"to"`
	Line int    `json:"line"`
	Args string `json:"args,omitempty"`
}

// Facts holds everything the analyzer extracted from one file.
type Facts struct {
	Imports      []string   `json:"imports,omitempty"`
	Exports      []string   `json:"exports,omitempty"`
	Namespace    string     `json:"namespace,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
	Classes      []Class    `json:"classes,omitempty"`
	Functions    []Function `json:"functions,omitempty"`
	Methods      []Method   `json:"methods,omitempty"`
	Variables    []Variable `json:"variables,omitempty"`
	Calls        []CallSite `json:"calls,omitempty"`
}
