package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiProvider_RequiresAPIKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), Config{}); err == nil {
		t.Error("expected missing API key to be rejected")
	}
}

func TestToGeminiSchema(t *testing.T) {
	schema := Object(map[string]*Schema{
		"title":      String("quest title"),
		"difficulty": StringEnum("effort level", "Easy", "Medium", "Hard"),
		"tags":       StringArray("free-form tags"),
		"score":      Number("0 to 1"),
		"index":      Integer("zero-based"),
	}, "title", "difficulty")

	out := toGeminiSchema(schema)

	if out.Type != genai.TypeObject {
		t.Errorf("expected object type, got %v", out.Type)
	}
	if len(out.Required) != 2 || out.Required[0] != "title" {
		t.Errorf("required fields not carried over: %v", out.Required)
	}
	if len(out.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(out.Properties))
	}

	if got := out.Properties["title"]; got.Type != genai.TypeString || got.Description != "quest title" {
		t.Errorf("string property mismatch: %+v", got)
	}
	if got := out.Properties["difficulty"]; len(got.Enum) != 3 || got.Enum[1] != "Medium" {
		t.Errorf("enum values not carried over: %v", got.Enum)
	}
	if got := out.Properties["tags"]; got.Type != genai.TypeArray || got.Items == nil || got.Items.Type != genai.TypeString {
		t.Errorf("array items mismatch: %+v", got)
	}
	if got := out.Properties["score"]; got.Type != genai.TypeNumber {
		t.Errorf("expected number type, got %v", got.Type)
	}
	if got := out.Properties["index"]; got.Type != genai.TypeInteger {
		t.Errorf("expected integer type, got %v", got.Type)
	}
}

func TestToGeminiSchema_Nil(t *testing.T) {
	if toGeminiSchema(nil) != nil {
		t.Error("expected nil schema to stay nil")
	}
}

func TestToGeminiSchema_UnknownTypeDefaultsToString(t *testing.T) {
	if got := toGeminiSchema(&Schema{Type: "mystery"}); got.Type != genai.TypeString {
		t.Errorf("expected unknown type to map to string, got %v", got.Type)
	}
}

func newGeminiTestServer(t *testing.T, content string, capturePath *string, captureBody *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("unexpected api key header %q", got)
		}
		if capturePath != nil {
			*capturePath = r.URL.Path
		}
		if captureBody != nil {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("reading request body: %v", err)
			}
			*captureBody = body
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": content}},
				}},
			},
		})
	}))
}

func TestGeminiProvider_GenerateJSON(t *testing.T) {
	var path string
	var body []byte
	server := newGeminiTestServer(t, `{"title": "Clean Up Day"}`, &path, &body)
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), Config{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}

	schema := Object(map[string]*Schema{"title": String("quest title")}, "title")
	raw, err := p.GenerateJSON(context.Background(), Request{Prompt: "generate a quest", Schema: schema})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}

	var out struct {
		Title string `json:"title"`
	}
	if err := Decode(raw, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Title != "Clean Up Day" {
		t.Errorf("unexpected title %q", out.Title)
	}

	if !strings.Contains(path, "gemini-2.0-flash") || !strings.Contains(path, "generateContent") {
		t.Errorf("unexpected request path %q", path)
	}

	// Structured output must be requested natively, not via the prompt.
	req := string(body)
	if !strings.Contains(req, "application/json") {
		t.Errorf("request missing JSON response mime type:\n%s", req)
	}
	if !strings.Contains(req, "responseSchema") || !strings.Contains(req, `"title"`) {
		t.Errorf("request missing response schema:\n%s", req)
	}
	if !strings.Contains(req, "generate a quest") {
		t.Errorf("request missing prompt:\n%s", req)
	}
}

func TestGeminiProvider_GenerateVisionJSON(t *testing.T) {
	var path string
	var body []byte
	server := newGeminiTestServer(t, `{"verification_result": "Verified"}`, &path, &body)
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), Config{
		APIKey:      "test-key",
		Model:       "gemini-2.0-flash",
		VisionModel: "gemini-2.5-pro",
		BaseURL:     server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}

	image := []byte("fake-image-bytes")
	raw, err := p.GenerateVisionJSON(context.Background(), VisionRequest{
		Request:  Request{Prompt: "verify this proof"},
		Image:    image,
		MIMEType: "image/png",
	})
	if err != nil {
		t.Fatalf("GenerateVisionJSON: %v", err)
	}
	if !strings.Contains(string(raw), "Verified") {
		t.Errorf("unexpected response %s", raw)
	}

	if !strings.Contains(path, "gemini-2.5-pro") {
		t.Errorf("expected the vision model in the path, got %q", path)
	}

	// The image travels inline, base64-encoded with its mime type.
	req := string(body)
	if !strings.Contains(req, "image/png") {
		t.Errorf("request missing image mime type:\n%s", req)
	}
	if !strings.Contains(req, base64.StdEncoding.EncodeToString(image)) {
		t.Errorf("request missing inline image payload:\n%s", req)
	}
}

func TestGeminiProvider_RejectsEmptyImage(t *testing.T) {
	server := newGeminiTestServer(t, `{}`, nil, nil)
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	if _, err := p.GenerateVisionJSON(context.Background(), VisionRequest{Request: Request{Prompt: "p"}}); err == nil {
		t.Error("expected empty image to be rejected")
	}
}

func TestGeminiProvider_EmptyResponseIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []map[string]any{}})
	}))
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	if _, err := p.GenerateJSON(context.Background(), Request{Prompt: "p"}); err == nil {
		t.Error("expected empty candidate list to be an error")
	}
}
