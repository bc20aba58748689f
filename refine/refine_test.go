package refine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/tsawler/resumeparser/schema"
)

func rawTree() map[string]any {
	return map[string]any{
		"contact": map[string]any{"name": "Jane Doe", "email": "jane@example.com"},
		"skills":  []any{"Go", "Python"},
		"work_experience": []any{
			map[string]any{"company": "Acme", "start_date": "Jan 2019", "end_date": "present", "description": []any{}},
		},
		"meta": map[string]any{"source": "resume.pdf"},
	}
}

func fixed(response string, err error) BackendFunc {
	return func(context.Context, string) (string, error) { return response, err }
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(map[string]any{"b": 1, "a": "<x>"}, `He said """hi"""`)
	if err != nil {
		t.Fatalf("BuildPrompt error = %v", err)
	}
	if !strings.Contains(prompt, "{\n  \"a\": \"<x>\",\n  \"b\": 1\n}") {
		t.Errorf("Expected sorted, indented, unescaped JSON in prompt, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"""He said \"\"\"hi\"\"\""""`) {
		t.Error("Expected triple quotes in raw text to be escaped")
	}
	if strings.Contains(prompt, "{raw_json}") || strings.Contains(prompt, "{raw_text}") {
		t.Error("Expected placeholders to be replaced")
	}
	if !strings.Contains(prompt, `"contact": {`) {
		t.Error("Expected schema description in prompt")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON{\"a\":1}```", `{"a":1}`},
		{"```\n{\"json\":1}\n```", `{"json":1}`},
		{"  {\"a\":1} ", `{"a":1}`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripCodeFences(tt.in); got != tt.want {
			t.Errorf("StripCodeFences(%q): Expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRefine_DisabledReturnsBaseline(t *testing.T) {
	called := false
	backend := BackendFunc(func(context.Context, string) (string, error) {
		called = true
		return "", nil
	})
	r := New(backend, Config{Enabled: false}, nil)

	got, err := r.Refine(context.Background(), rawTree(), "")
	if err != nil {
		t.Fatalf("Refine error = %v", err)
	}
	if called {
		t.Error("Expected backend not to be called when disabled")
	}
	skills := got["skills"].([]any)
	if len(skills) != 2 || skills[0].(map[string]any)["name"] != "Go" {
		t.Errorf("Expected sanitized skills, got %v", skills)
	}
	work := got["work_experience"].([]any)[0].(map[string]any)
	if work["start_date"] != "2019-01" || work["end_date"] != "Present" {
		t.Errorf("Expected normalized dates, got %v / %v", work["start_date"], work["end_date"])
	}
}

func TestRefine_NilBackend(t *testing.T) {
	r := New(nil, DefaultConfig(), nil)
	if r.Enabled() {
		t.Error("Expected refiner without backend to be disabled")
	}
	if _, err := r.Refine(context.Background(), rawTree(), ""); err != nil {
		t.Errorf("Expected baseline without error, got %v", err)
	}
}

func TestRefine_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
	}{
		{"backend error", fixed("", errors.New("timeout"))},
		{"empty response", fixed("   ", nil)},
		{"not json", fixed("I cannot help with that", nil)},
		{"json array", fixed(`["Go"]`, nil)},
		{"invalid date", fixed(`{"work_experience":[{"company":"Acme","start_date":"sometime"}]}`, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline, err := schema.Sanitize(rawTree())
			if err != nil {
				t.Fatalf("Sanitize error = %v", err)
			}
			got, err := New(tt.backend, DefaultConfig(), nil).Refine(context.Background(), rawTree(), "text")
			if err != nil {
				t.Fatalf("Refine error = %v", err)
			}
			if got["contact"].(map[string]any)["name"] != "Jane Doe" {
				t.Errorf("Expected baseline contact, got %v", got["contact"])
			}
			if len(got["skills"].([]any)) != len(baseline["skills"].([]any)) {
				t.Errorf("Expected baseline skills, got %v", got["skills"])
			}
		})
	}
}

func TestRefine_UsesModelOutput(t *testing.T) {
	var prompt string
	backend := BackendFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "```json\n{\"contact\":{\"name\":\"Jane Doe\",\"bogus\":1},\"skills\":[{\"name\":\"Go\",\"category\":\"language\"}],\"extra\":true}\n```", nil
	})

	got, err := New(backend, DefaultConfig(), nil).Refine(context.Background(), rawTree(), "Jane Doe\nGo")
	if err != nil {
		t.Fatalf("Refine error = %v", err)
	}
	if !strings.Contains(prompt, "Jane Doe\nGo") {
		t.Error("Expected raw text in the prompt")
	}
	if _, ok := got["extra"]; ok {
		t.Error("Expected unknown top-level key to be dropped")
	}
	if _, ok := got["contact"].(map[string]any)["bogus"]; ok {
		t.Error("Expected unknown contact key to be dropped")
	}
	skills := got["skills"].([]any)
	if len(skills) != 1 || skills[0].(map[string]any)["category"] != "language" {
		t.Errorf("Expected refined skills, got %v", skills)
	}
	if work := got["work_experience"].([]any); len(work) != 0 {
		t.Errorf("Expected model output to replace work experience, got %v", work)
	}
}

func TestRefine_InvalidBaseline(t *testing.T) {
	raw := map[string]any{"education": []any{map[string]any{"institution": "MIT", "end_date": "whenever"}}}
	if _, err := New(nil, Config{}, nil).Refine(context.Background(), raw, ""); err == nil {
		t.Error("Expected error for a baseline that fails validation")
	}
}

func TestRefineResume(t *testing.T) {
	resume := schema.NewResume()
	resume.Contact.Name = "Jane Doe"
	resume.Skills = []schema.Skill{{Name: "Go"}}

	backend := fixed(`{"contact":{"name":"Jane Doe"},"skills":["Go","Rust"]}`, nil)
	got, err := New(backend, DefaultConfig(), nil).RefineResume(context.Background(), resume, "")
	if err != nil {
		t.Fatalf("RefineResume error = %v", err)
	}
	if names := got.SkillNames(); len(names) != 2 || names[1] != "Rust" {
		t.Errorf("Expected skills [Go Rust], got %v", names)
	}
}

func TestHTTPBackend(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
		wantErr     bool
	}{
		{"output field", "application/json", `{"output":"{\"a\":1}"}`, `{"a":1}`, false},
		{"response field", "application/json; charset=utf-8", `{"response":"hello"}`, "hello", false},
		{"nested object", "application/json", `{"output":{"a":1}}`, `{"a":1}`, false},
		{"no field", "application/json", `{"other":"x"}`, "", true},
		{"bad json", "application/json", `{nope`, "", true},
		{"plain text", "text/plain", `{"contact":{}}`, `{"contact":{}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewHTTPBackend(srv.URL, srv.Client(), nil).Generate(context.Background(), "p")
			if tt.wantErr {
				if !errors.Is(err, ErrNoResponse) {
					t.Errorf("Expected ErrNoResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHTTPBackendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL, srv.Client(), nil), DefaultConfig(), nil)
	got, err := r.Refine(context.Background(), rawTree(), "")
	if err != nil {
		t.Fatalf("Expected fallback to baseline, got error %v", err)
	}
	if got["contact"].(map[string]any)["email"] != "jane@example.com" {
		t.Errorf("Expected baseline contact, got %v", got["contact"])
	}
}

func TestNewGeminiBackendRequiresKey(t *testing.T) {
	if _, err := NewGeminiBackend(context.Background(), "  ", "", nil); err == nil {
		t.Error("Expected error for empty API key")
	}
	var g *GeminiBackend
	if err := g.Close(); err != nil {
		t.Errorf("Expected nil Close on nil backend, got %v", err)
	}
}

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(" {\"a\":"), genai.Text("1} ")}},
		}},
	}
	if got := firstText(resp); got != `{"a":1}` {
		t.Errorf("Expected {\"a\":1}, got %q", got)
	}
	if got := firstText(nil); got != "" {
		t.Errorf("Expected empty text for nil response, got %q", got)
	}
	if got := firstText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("Expected empty text without candidates, got %q", got)
	}
}
