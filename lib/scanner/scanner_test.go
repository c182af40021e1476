package scanner

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/lexer"
)

func one(t *testing.T, src string, opts ...Option) Assertion {
	t.Helper()
	assertions, err := Scan("test.cpp", src, opts...)
	if err != nil {
		t.Fatalf("scan %q: %v", src, err)
	}
	if len(assertions) != 1 {
		t.Fatalf("scan %q: got %d assertions, want 1", src, len(assertions))
	}
	return assertions[0]
}

func TestNoAssertions(t *testing.T) {
	sources := []string{
		"",
		"int x = 3;",
		"void f() { int a; a = 1; g(a); }",
		"class Foo;",
		"class Foo { int x; void f() { x = 1; } };",
		"namespace ns { void f() { } }",
	}
	for _, src := range sources {
		assertions, err := Scan("test.cpp", src)
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		if len(assertions) != 0 {
			t.Errorf("scan %q: unexpected assertions %v", src, assertions)
		}
	}
}

func TestSimpleAssertion(t *testing.T) {
	src := `void f() { NS_ASSERTION(x > 0, "msg"); }`
	a := one(t, src)
	if !reflect.DeepEqual(a.Args, []string{"x > 0", `"msg"`}) {
		t.Errorf("args = %q", a.Args)
	}
	if !a.Prelude {
		t.Error("prelude = false, want true")
	}
	if a.Statements != 0 {
		t.Errorf("statements = %d, want 0", a.Statements)
	}
	if a.File != "test.cpp" {
		t.Errorf("file = %q", a.File)
	}
	// Offset points just past the macro's opening parenthesis.
	want := strings.Index(src, "NS_ASSERTION(") + len("NS_ASSERTION(")
	if a.Offset != want {
		t.Errorf("offset = %d, want %d", a.Offset, want)
	}
}

func TestStatementCount(t *testing.T) {
	a := one(t, "void f() { int a; NS_ASSERTION(a); }")
	if a.Statements != 1 {
		t.Errorf("statements = %d, want 1", a.Statements)
	}
	if !a.Prelude {
		t.Error("prelude = false, want true")
	}
}

func TestNestedBlockCountsAsStatement(t *testing.T) {
	// The closing brace of the empty block is counted, the opening one
	// is not.
	a := one(t, "void f() { {} NS_ASSERTION(a); }")
	if a.Statements != 1 {
		t.Errorf("statements = %d, want 1", a.Statements)
	}
}

func TestPreludeCleared(t *testing.T) {
	cases := []string{
		"void f() { a = 1; NS_ASSERTION(a); }",   // assignment
		"void f() { g(); NS_ASSERTION(a); }",     // call
		"void f() { a + 1; NS_ASSERTION(a); }",   // other token
		"void f() { g(); h(); NS_ASSERTION(a); }", // stays cleared
	}
	for _, src := range cases {
		if a := one(t, src); a.Prelude {
			t.Errorf("scan %q: prelude = true, want false", src)
		}
	}
}

func TestPreludeSurvivesDeclarations(t *testing.T) {
	// Brackets, angles, ':' and '::' are structural, not expression
	// tokens; declarations built from them keep the prelude alive.
	cases := []string{
		"void f() { int a[3]; NS_ASSERTION(a); }",
		"void f() { Vec<T> v; NS_ASSERTION(v); }",
		"void f() { ns::Thing t; NS_ASSERTION(t); }",
	}
	for _, src := range cases {
		if a := one(t, src); !a.Prelude {
			t.Errorf("scan %q: prelude = false, want true", src)
		}
	}
}

func TestNestedArgumentSplit(t *testing.T) {
	a := one(t, `void f() { NS_ASSERTION(f(a,b), "m"); }`)
	if !reflect.DeepEqual(a.Args, []string{"f(a,b)", `"m"`}) {
		t.Errorf("args = %q", a.Args)
	}
}

func TestClassMethodIsolation(t *testing.T) {
	src := `
class Foo {
	int mCount;
	void Bar() {
		NS_ASSERTION(mCount, "count");
	}
};
`
	a := one(t, src)
	if !a.Prelude || a.Statements != 0 {
		t.Errorf("prelude = %t statements = %d, want true/0; the class "+
			"body's token history leaked into the method", a.Prelude, a.Statements)
	}
}

func TestBothDefaultMacros(t *testing.T) {
	assertions, err := Scan("t.cpp", "void f() { NS_ASSERTION(a); JS_ASSERT(b); }")
	if err != nil {
		t.Fatal(err)
	}
	if len(assertions) != 2 {
		t.Fatalf("got %d assertions, want 2", len(assertions))
	}
	if assertions[0].Args[0] != "a" || assertions[1].Args[0] != "b" {
		t.Errorf("order not preserved: %v", assertions)
	}
	if assertions[1].Statements != 1 {
		t.Errorf("second assertion statements = %d, want 1", assertions[1].Statements)
	}
}

func TestMacroSetInjection(t *testing.T) {
	src := "void f() { MOZ_ASSERT(a); NS_ASSERTION(b); }"

	assertions, err := Scan("t.cpp", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(assertions) != 1 || assertions[0].Args[0] != "b" {
		t.Fatalf("default macro set: got %v", assertions)
	}

	assertions, err = Scan("t.cpp", src, WithMacros("MOZ_ASSERT"))
	if err != nil {
		t.Fatal(err)
	}
	if len(assertions) != 1 || assertions[0].Args[0] != "a" {
		t.Fatalf("injected macro set: got %v", assertions)
	}
}

func TestMacroNameWithoutParens(t *testing.T) {
	assertions, err := Scan("t.cpp", "void f() { NS_ASSERTION; g(); }")
	if err != nil {
		t.Fatal(err)
	}
	if len(assertions) != 0 {
		t.Errorf("got %v, want none", assertions)
	}
}

func TestUnterminatedString(t *testing.T) {
	assertions, err := Scan("t.cpp", `void f() { NS_ASSERTION(a); } "oops`)
	var perr *lexer.ParseError
	if !errors.As(err, &perr) || perr.Msg != lexer.UnterminatedString {
		t.Fatalf("got %v, want %s", err, lexer.UnterminatedString)
	}
	if assertions != nil {
		t.Errorf("partial assertions returned: %v", assertions)
	}
}

func TestUnclosedMacroParenthesis(t *testing.T) {
	_, err := Scan("t.cpp", "void f() { NS_ASSERTION(a, b")
	var perr *lexer.ParseError
	if !errors.As(err, &perr) || perr.Msg != lexer.UnclosedParenthesis {
		t.Fatalf("got %v, want %s", err, lexer.UnclosedParenthesis)
	}
}

func TestTruncatedBody(t *testing.T) {
	src := "void f() { NS_ASSERTION(a); int x;"

	// Default: silent truncation, keep what was gathered.
	assertions, err := Scan("t.cpp", src)
	if err != nil {
		t.Fatalf("lenient scan: %v", err)
	}
	if len(assertions) != 1 {
		t.Fatalf("lenient scan: got %d assertions, want 1", len(assertions))
	}

	// Strict: the open function body is an error.
	_, err = Scan("t.cpp", src, Strict())
	var uerr *UnterminatedError
	if !errors.As(err, &uerr) || uerr.Construct != "function body" {
		t.Fatalf("strict scan: got %v, want unterminated function body", err)
	}
}

func TestTruncatedClass(t *testing.T) {
	_, err := Scan("t.cpp", "class Foo { int x;", Strict())
	var uerr *UnterminatedError
	if !errors.As(err, &uerr) || uerr.Construct != "class body" {
		t.Fatalf("got %v, want unterminated class body", err)
	}
}

func TestIdempotence(t *testing.T) {
	src := `
class Widget {
	void Check() {
		NS_ASSERTION(mReady, "not ready");
		if (mCount > 0) {
			JS_ASSERT(mCount < kMax);
		}
	}
};
void Free(void* p) { JS_ASSERT(p); free(p); }
`
	first, err := Scan("w.cpp", src)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Scan("w.cpp", src)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ:\n%v\n%v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("got %d assertions, want 3", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i].Offset <= first[i-1].Offset {
			t.Errorf("offsets out of order: %v", first)
		}
	}
}

func TestString(t *testing.T) {
	a := Assertion{
		Args:       []string{"x > 0", `"msg"`},
		File:       "nsFoo.cpp",
		Offset:     27,
		Prelude:    true,
		Statements: 0,
	}
	want := `Assertion(["x > 0", "\"msg\""], "nsFoo.cpp", 27, true, 0)`
	if got := a.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
