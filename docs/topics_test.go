package docs

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/payments"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	csvInput  = "csv input"
	csvOutput = "csv output"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file but
	// readme.md is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(\"nope\") succeeded, want error")
	}

	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) failed: %v", err)
	}
	for _, title := range []string{"# Input", "# Output", "# Disputes", "# Concurrency"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) does not contain %q", title)
		}
	}
	if strings.Contains(all, "# pay") {
		t.Error("GetTopics(*) contains the readme")
	}
}

func TestIndex(t *testing.T) {
	got, err := Index()
	if err != nil {
		t.Fatalf("Index() failed: %v", err)
	}
	for _, want := range []string{
		"* `concurrency`: Concurrency",
		"* `disputes`: Disputes",
		"* `input`: Input",
		"* `output`: Output",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Index() does not contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "`readme`") {
		t.Errorf("Index() lists the readme:\n%s", got)
	}
}

// TestExamples processes every `csv input` block of the documentation and
// checks the result against the `csv output` block following it, in both modes.
func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		examples := parseExamples(t, file)
		for i, ex := range examples {
			for _, mode := range []payments.Mode{payments.Serial, payments.Concurrent} {
				res, err := payments.Process(context.Background(), strings.NewReader(ex.input), payments.Options{Mode: mode})
				if err != nil {
					t.Fatalf("%s:%d: Process() failed: %v", file, ex.line, err)
				}
				var b bytes.Buffer
				if err := payments.EncodeSnapshots(&b, res.Snapshots); err != nil {
					t.Fatalf("%s:%d: EncodeSnapshots() failed: %v", file, ex.line, err)
				}
				got := strings.TrimSpace(b.String())
				want := strings.TrimSpace(ex.output)
				if got != want {
					t.Errorf("%s example %d (%v): output mismatch:\ngot:\n%s\n\nwant:\n%s", file, i, mode, got, want)
				}
			}
		}
	}
}

// example is a pair of fenced code blocks: an input and its expected output.
type example struct {
	input, output string
	line          int
}

// parseExamples returns the examples of a markdown file. An input block
// without an output block is an error.
func parseExamples(t *testing.T, file string) []example {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var examples []example
	var pending *example
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var block strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			block.Write(line.Value(content))
		}
		switch string(fcb.Info.Segment.Value(content)) {
		case csvInput:
			if pending != nil {
				t.Errorf("%s:%d: input block without output", file, pending.line)
			}
			pending = &example{input: block.String(), line: bytes.Count(content[:fcb.Info.Segment.Start], []byte("\n")) + 1}
		case csvOutput:
			if pending == nil {
				t.Errorf("%s: output block without input", file)
				break
			}
			pending.output = block.String()
			examples = append(examples, *pending)
			pending = nil
		}
		return ast.WalkContinue, nil
	})
	if pending != nil {
		t.Errorf("%s:%d: input block without output", file, pending.line)
	}
	return examples
}
