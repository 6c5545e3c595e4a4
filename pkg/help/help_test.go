package help

import (
	"strings"
	"testing"
)

func TestQUICKREFNonEmpty(t *testing.T) {
	if len(QUICKREF) == 0 {
		t.Fatal("QUICKREF is empty")
	}
}

func TestQUICKREFContainsVersion(t *testing.T) {
	if !strings.Contains(QUICKREF, "v0.1") {
		t.Error("QUICKREF does not contain version string v0.1")
	}
}

func TestQUICKREFListsTopics(t *testing.T) {
	for _, topic := range TopicList {
		if !strings.Contains(QUICKREF, topic) {
			t.Errorf("QUICKREF does not mention topic %q", topic)
		}
	}
}

func TestTopicListMatchesTopics(t *testing.T) {
	for _, name := range TopicList {
		if _, ok := Topics[name]; !ok {
			t.Errorf("TopicList entry %q not in Topics map", name)
		}
	}
	if len(TopicList) != len(Topics) {
		t.Errorf("TopicList has %d entries, Topics has %d", len(TopicList), len(Topics))
	}
}

func TestTopicsNonEmpty(t *testing.T) {
	for name, content := range Topics {
		if len(content) == 0 {
			t.Errorf("topic %q has empty content", name)
		}
	}
}

func TestDiagnosticsTopicListsCodes(t *testing.T) {
	for _, code := range []string{"E_SYNTAX", "E_PARSE", "E_NOT_IMPLEMENTED", "W_UNKNOWN_FN", "W_CALL_CONFLICT"} {
		if !strings.Contains(Topics["diagnostics"], code) {
			t.Errorf("diagnostics topic missing %s", code)
		}
	}
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"syntax", "syntax"},
		{"diag", "diagnostics"},
		{"ex", "examples"},
		{"col", "collections"},
		{"r", "resources"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			name, content, err := MatchTopic(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.want {
				t.Errorf("got %q, want %q", name, tt.want)
			}
			if content == "" {
				t.Error("expected non-empty content")
			}
		})
	}
}

func TestMatchTopicErrors(t *testing.T) {
	for _, query := range []string{"nonexistent", "", "f", "constructor"} {
		if _, _, err := MatchTopic(query); err == nil {
			t.Errorf("MatchTopic(%q) should fail", query)
		}
	}
	_, _, err := MatchTopic("f")
	if err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
}

func TestMatchTopicAllExact(t *testing.T) {
	for _, topic := range TopicList {
		name, content, err := MatchTopic(topic)
		if err != nil {
			t.Errorf("MatchTopic(%q) error: %v", topic, err)
			continue
		}
		if name != topic || content == "" {
			t.Errorf("MatchTopic(%q) returned %q", topic, name)
		}
	}
}

func TestIndex(t *testing.T) {
	idx := Index()
	if !strings.Contains(idx, "Total: 9 topics") {
		t.Errorf("Index should report 9 topics, got:\n%s", idx)
	}
	if !strings.Contains(idx, "flow") || !strings.Contains(idx, "Conditions") {
		t.Errorf("Index missing flow summary:\n%s", idx)
	}
}
