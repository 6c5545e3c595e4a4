// Package help holds the built-in Styio syntax reference printed by `styio ref`.
package help

import (
	"fmt"
	"sort"
	"strings"
)

// QUICKREF is the overview shown when no topic is given.
const QUICKREF = `Styio front end v0.1 quick reference

  styio <file>          parse, infer and dump a program
  styio check <file>    report diagnostics only
  styio repl            interactive session
  styio ref [topic]     this reference

Topics (styio ref <topic>, prefixes work):
  syntax       statements and bindings
  literals     numbers, strings, characters, formatted strings
  collections  lists, tuples, sets, ranges, list operations
  flow         conditions, forwards, iteration, loops, cases
  functions    function definitions and calls
  resources    @(...) resources, file reads, packages, print
  types        type names and inference rules
  diagnostics  error and warning codes
  examples     short programs
`

// TopicList is the display order of the topics.
var TopicList = []string{
	"syntax",
	"literals",
	"collections",
	"flow",
	"functions",
	"resources",
	"types",
	"diagnostics",
	"examples",
}

// Topics maps a topic name to its text.
var Topics = map[string]string{
	"syntax": `Statements
  x = expr            flexible binding, may be reassigned
  x := expr           final binding, assigned once per scope
  x: i32 = expr       binding with a declared type
  x += 1              in-place operators: += -= *= /= %= **=
  ...                 pass (any run of dots)
  ^^^                 break (any run of carets)
  => expr             return
  { stmt stmt }       block

Operators chain strictly left to right on one line:
  1 + 2 * 3  is  ((1 + 2) * 3)

Comments: // to end of line, /* block */
(a block comment on one line may sit before an operator)`,

	"literals": `Literals
  42  -7  007         integers keep their digits
  3.14  -0.5          floats need a digit after the dot
  true  false         booleans
  'a'                 character (one character inside quotes)
  'ab'  "ab"          strings; escapes \" \\ \' \n \r \t \0
  $"x = {x + 1}"      formatted string; {{ and }} are literal braces`,

	"collections": `Collections
  [1, 2, 3]           list
  (1, 2)              tuple
  {1, 2}              set
  |xs|                size of
  [0..9]              finite range, step 1
  [0..n]  [...]       infinite sequences

List operations on a name or list:
  xs[<]               reverse
  xs[2]               element at index
  xs["k"]             element by key
  xs[?= v]            index of value
  xs[?^ (a, b)]       indices of values
  xs[+: v]            append
  xs[+: i <- v]       insert at index
  xs[-: i]            remove at index
  xs[-: (i, j)]       remove indices
  xs[-: ?= v]         remove value
  xs[-: ?^ (a, b)]    remove values`,

	"flow": `Conditions
  ?(a > 1 && b) \t\ { ... } \f\ { ... }
  ?(x == 0) \f\ { ... }
  && and & mean and; || | and ^ mean or; !(c) negates

Forwards (after >> or in a function)
  (x) => body         run
  (x) ?= v => body    only when equal to v
  (x) ?^ [a, b] => b  only when contained in the collection
  (x) ?(x > 1) \t\ { ... }
  (x) ?= { 1 => "one"  _ => "other" }   cases, _ default required

Iteration
  xs >> (x) => { ... }
  [0..10] >> (i) => >_(i)
  [...] >> { ^^^ }    infinite loop`,

	"functions": `Functions
  # add := (a, b) => a + b          final function
  # add = (a: i32, b: i32) => a + b flexible function
  # sq : f64 = (x) => x * x         declared return type
  add(1, 2)                         call

Undeclared parameters take their types from the first call that passes
typed arguments.`,

	"resources": `Resources
  @("data.csv")                  local path
  @("ftp://host/file")           remote path
  @("https://example.com")       web URL
  @("postgres://db/x")           database URL
  f <- @("data.csv")             read a file into f
  @(a <- @("x.txt")) -> { ... }  resource block
  @["fmt", "math"]               external packages
  >_(a, "b", 1)                  print`,

	"types": `Types
  bool (alias i1), i8, i16, i32, i64, i128, f32, f64

Inference
  integer literals default to i32, float literals to f64
  + - * / take the wider operand type (int < float)
  % and ** stay untyped
  a declared binding type is pushed into its value
  collections are consistent when every element shares one type`,

	"diagnostics": `Errors (stop parsing)
  E_SYNTAX            malformed or unterminated source
  E_PARSE             unexpected input where a value was expected
  E_NOT_IMPLEMENTED   recognised but unsupported syntax
  E_IO                the input file could not be read
  E_BACKEND           the backend rejected the program

Warnings (inference continues)
  W_UNKNOWN_FN        call to a function that does not exist
  W_ARG_COUNT         wrong number of arguments
  W_CALL_CONFLICT     a later call passes different argument types

Exit codes: 0 ok, 1 usage, 2 diagnostics, 4 backend failure`,

	"examples": `Examples
  # fib := (n) ?= {
    0 => 0
    1 => 1
    _ => fib(n - 1) + fib(n - 2)
  }

  total = 0
  [1..10] >> (i) => { total += i }
  >_($"total = {total}")

  ?(total > 50) \t\ { >_("big") } \f\ { >_("small") }`,
}

// MatchTopic resolves an exact topic name or a unique prefix.
func MatchTopic(query string) (string, string, error) {
	if content, ok := Topics[query]; ok {
		return query, content, nil
	}
	var matches []string
	for _, name := range TopicList {
		if query != "" && strings.HasPrefix(name, query) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("unknown topic %q; available: %s", query, strings.Join(TopicList, ", "))
	case 1:
		return matches[0], Topics[matches[0]], nil
	}
	return "", "", fmt.Errorf("ambiguous topic %q matches %s", query, strings.Join(matches, ", "))
}

// Index lists every topic with its first line, sorted by name.
func Index() string {
	names := make([]string, 0, len(Topics))
	for name := range Topics {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		first, _, _ := strings.Cut(Topics[name], "\n")
		fmt.Fprintf(&b, "  %-12s %s\n", name, first)
	}
	fmt.Fprintf(&b, "Total: %d topics\n", len(names))
	return b.String()
}
