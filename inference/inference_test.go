package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/tsawler/resumeparser/model"
)

func makeDoc(pages ...int) *model.Document {
	doc := model.NewDocument("test.pdf")
	for p, n := range pages {
		page := model.NewPage(612, 792, p+1)
		for i := 0; i < n; i++ {
			page.AddToken(model.NewToken("w"+strconv.Itoa(i), model.NewBBox(i, 10, i+1, 20), p))
		}
		doc.AddPage(page)
	}
	return doc
}

// countingEmbedder returns one single-value vector per token holding the
// window's call number.
type countingEmbedder struct {
	calls int
	sizes []int
}

func (c *countingEmbedder) Embed(_ context.Context, _ *model.Page, tokens []model.Token) ([]Vector, error) {
	c.calls++
	c.sizes = append(c.sizes, len(tokens))
	out := make([]Vector, len(tokens))
	for i := range out {
		out[i] = Vector{Embedding: []float64{float64(c.calls)}}
	}
	return out, nil
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name               string
		n, maxLen, overlap int
		want               []Window
	}{
		{"empty", 0, 512, 32, nil},
		{"single window", 10, 512, 32, []Window{{0, 10}}},
		{"exact fit", 512, 512, 32, []Window{{0, 512}}},
		{"overlapping", 1000, 512, 32, []Window{{0, 512}, {480, 992}, {960, 1000}}},
		{"no overlap", 10, 4, 0, []Window{{0, 4}, {4, 8}, {8, 10}}},
		{"overlap too large", 5, 3, 3, []Window{{0, 3}, {1, 4}, {2, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.n, tt.maxLen, tt.overlap)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d windows, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Window %d: Expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPredictOverlapKeepsFirstVector(t *testing.T) {
	doc := makeDoc(10)
	e := &countingEmbedder{}
	p := NewPredictor(e, Config{MaxLength: 4, ChunkOverlap: 1}, nil)

	got, err := p.Predict(context.Background(), doc)
	if err != nil {
		t.Fatalf("Predict error = %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("Expected 10 embeddings, got %d", len(got))
	}
	// windows: [0,4) [3,7) [6,10)
	if e.calls != 3 {
		t.Errorf("Expected 3 embedder calls, got %d", e.calls)
	}
	if got[3].Embedding[0] != 1 {
		t.Errorf("Expected token 3 to keep the first window's vector, got %v", got[3].Embedding)
	}
	if got[4].Embedding[0] != 2 {
		t.Errorf("Expected token 4 from the second window, got %v", got[4].Embedding)
	}
	for i, te := range got {
		if te.Token.Text != "w"+strconv.Itoa(i) {
			t.Errorf("Expected token w%d at %d, got %s", i, i, te.Token.Text)
		}
	}
}

func TestPredictAcrossPages(t *testing.T) {
	doc := makeDoc(3, 0, 2)
	got, err := Predict(context.Background(), &countingEmbedder{}, doc)
	if err != nil {
		t.Fatalf("Predict error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Expected 5 embeddings, got %d", len(got))
	}
	if got[4].Token.Page != 2 {
		t.Errorf("Expected last embedding from page index 2, got %d", got[4].Token.Page)
	}
}

func TestPredictTruncatedWindow(t *testing.T) {
	doc := makeDoc(5)
	short := EmbedderFunc(func(_ context.Context, _ *model.Page, tokens []model.Token) ([]Vector, error) {
		return make([]Vector, len(tokens)-2), nil
	})

	got, err := Predict(context.Background(), short, doc)
	if err != nil {
		t.Fatalf("Predict error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 embeddings from a truncated window, got %d", len(got))
	}
}

func TestPredictError(t *testing.T) {
	boom := errors.New("model offline")
	failing := EmbedderFunc(func(context.Context, *model.Page, []model.Token) ([]Vector, error) {
		return nil, boom
	})

	if _, err := Predict(context.Background(), failing, makeDoc(2)); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped embedder error, got %v", err)
	}
	if got, err := Predict(context.Background(), failing, nil); err != nil || got != nil {
		t.Errorf("Expected nil result for nil document, got %v, %v", got, err)
	}
}

func TestRemoteEmbedder(t *testing.T) {
	var req embedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := embedResponse{Logits: [][]float64{{0.1, 0.9}}}
		for range req.Words {
			resp.Embeddings = append(resp.Embeddings, []float64{1, 2, 3})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	doc := makeDoc(3)
	e := NewRemoteEmbedder(srv.URL, srv.Client(), nil).WithHeader("Authorization", "Bearer t")
	got, err := Predict(context.Background(), e, doc)
	if err != nil {
		t.Fatalf("Predict error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 embeddings, got %d", len(got))
	}
	if len(got[0].Logits) != 2 || got[1].Logits != nil {
		t.Errorf("Expected logits only on the first token, got %v and %v", got[0].Logits, got[1].Logits)
	}
	if req.Width != 612 || req.Height != 792 {
		t.Errorf("Expected page size 612x792 in request, got %dx%d", req.Width, req.Height)
	}
	if len(req.Boxes) != 3 || req.Boxes[2][0] != 2 {
		t.Errorf("Expected boxes for 3 tokens, got %v", req.Boxes)
	}
}

func TestRemoteEmbedderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Predict(context.Background(), NewRemoteEmbedder(srv.URL, nil, nil), makeDoc(1))
	if err == nil {
		t.Error("Expected error for 503 response")
	}
}
