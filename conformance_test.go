package styio_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/styio-lang/styio/internal/testutil"
	"github.com/styio-lang/styio/pkg/compiler"
	"github.com/styio-lang/styio/pkg/diagnostics"
	"github.com/styio-lang/styio/pkg/printer"
)

func TestConformance(t *testing.T) {
	dirs, err := testutil.ListScenarios(testutil.ScenariosDir)
	if err != nil {
		t.Fatalf("failed to list scenarios: %v", err)
	}
	if len(dirs) == 0 {
		t.Fatal("no scenarios found")
	}

	for _, dir := range dirs {
		dir := dir
		t.Run(filepath.Base(dir), func(t *testing.T) {
			scenario, err := testutil.LoadScenario(dir)
			if err != nil {
				t.Fatalf("failed to load scenario: %v", err)
			}
			source, filename, err := testutil.ReadProgramFile(dir, scenario.Cmd)
			if err != nil {
				t.Fatalf("failed to read program file: %v", err)
			}

			pretty := false
			for _, arg := range scenario.Cmd {
				if arg == "--pretty" {
					pretty = true
				}
			}

			switch scenario.Cmd[0] {
			case "check":
				runCheckScenario(t, source, filename, scenario, pretty)
			case "compile":
				runCompileScenario(t, source, filename, scenario, pretty)
			default:
				t.Skipf("unsupported command: %s", scenario.Cmd[0])
			}
		})
	}
}

func runCheckScenario(t *testing.T, source, filename string, scenario *testutil.Scenario, pretty bool) {
	t.Helper()
	_, diags := compiler.New().Check(source, filename)
	exit := 0
	if diagnostics.HasErrors(diags) {
		exit = 2
	}
	if scenario.Expect.ExitCode != exit {
		t.Errorf("exit code: got %d, want %d", exit, scenario.Expect.ExitCode)
	}
	checkStderrExpectations(t, diags, scenario, pretty)
}

func runCompileScenario(t *testing.T, source, filename string, scenario *testutil.Scenario, pretty bool) {
	t.Helper()
	res, err := compiler.New(compiler.WithSessionID("conformance")).Compile(context.Background(), source, filename)
	if err != nil {
		var de *compiler.DiagnosticError
		if !errors.As(err, &de) {
			t.Fatalf("unexpected error type: %v", err)
		}
		if scenario.Expect.ExitCode != 2 {
			t.Errorf("exit code: got 2, want %d (%s)", scenario.Expect.ExitCode, de.Error())
		}
		checkStderrExpectations(t, de.Diagnostics, scenario, pretty)
		return
	}

	if scenario.Expect.ExitCode != 0 {
		t.Errorf("exit code: got 0, want %d", scenario.Expect.ExitCode)
	}
	checkStderrExpectations(t, res.Warnings, scenario, pretty)

	dump := printer.Dump(res.Program)
	for _, want := range scenario.Expect.DumpContains {
		if !strings.Contains(dump, want) {
			t.Errorf("dump should contain %q, got:\n%s", want, dump)
		}
	}

	if scenario.Expect.TreeJSONSubset != nil {
		var expected any
		if err := json.Unmarshal(scenario.Expect.TreeJSONSubset, &expected); err != nil {
			t.Fatalf("failed to parse expected tree subset: %v", err)
		}
		actual, err := testutil.ToJSONValue(printer.Tree(res.Program))
		if err != nil {
			t.Fatalf("failed to serialize tree: %v", err)
		}
		if !testutil.IsSubset(expected, actual) {
			data, _ := json.MarshalIndent(actual, "", "  ")
			t.Errorf("tree subset not found:\n  want: %s\n  got: %s", scenario.Expect.TreeJSONSubset, data)
		}
	}
}

func checkStderrExpectations(t *testing.T, diags []diagnostics.Diagnostic, scenario *testutil.Scenario, pretty bool) {
	t.Helper()

	if scenario.Expect.StderrContains != "" {
		out := diagnostics.FormatDiagnostics(diags, pretty)
		if !strings.Contains(out, scenario.Expect.StderrContains) {
			t.Errorf("stderr should contain '%s', got: %s", scenario.Expect.StderrContains, out)
		}
	}

	if scenario.Expect.StderrJSONSubset == nil {
		return
	}
	var expected []any
	if err := json.Unmarshal(scenario.Expect.StderrJSONSubset, &expected); err != nil {
		t.Fatalf("failed to parse expected stderr JSON subset: %v", err)
	}
	actual, err := testutil.ToJSONValue(diags)
	if err != nil {
		t.Fatalf("failed to serialize diagnostics: %v", err)
	}
	actualList, _ := actual.([]any)
	for _, e := range expected {
		found := false
		for _, a := range actualList {
			if testutil.IsSubset(e, a) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("stderr JSON subset not found: %v", e)
		}
	}
}
