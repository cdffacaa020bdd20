package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "test-key", "vision-model", "image-model", zerolog.Nop())
}

func TestRecognizeDrawing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Write([]byte(chatBody(`{"guess": "Watering Can"}`)))
	})

	guess, err := c.RecognizeDrawing(context.Background(), []byte("png-bytes"))
	if err != nil {
		t.Fatalf("RecognizeDrawing: %v", err)
	}
	if guess != "watering can" {
		t.Errorf("guess = %q, want %q", guess, "watering can")
	}
}

func TestRecognizeDrawingRetriesOnBadJSON(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(chatBody("I think it is a bee!")))
			return
		}
		w.Write([]byte(chatBody(`{"guess": "bee"}`)))
	})

	guess, err := c.RecognizeDrawing(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("RecognizeDrawing: %v", err)
	}
	if guess != "bee" {
		t.Errorf("guess = %q, want bee", guess)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRecognizeDrawingGivesUpAfterRetry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatBody("still not json")))
	})

	_, err := c.RecognizeDrawing(context.Background(), []byte("png"))
	if !errors.Is(err, ErrInvalidReply) {
		t.Errorf("error = %v, want ErrInvalidReply", err)
	}
}

func TestErrorTranslation(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadPrompt},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrUpstream},
		{http.StatusBadGateway, ErrUpstream},
	}

	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := c.RecognizeDrawing(context.Background(), []byte("png"))
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestGenerateSceneImage(t *testing.T) {
	imgBytes := []byte{0x89, 'P', 'N', 'G'}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("path = %s, want /images/generations", r.URL.Path)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.ResponseFormat != "b64_json" {
			t.Errorf("response_format = %q", req.ResponseFormat)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(imgBytes)},
			},
		})
	})

	img, err := c.GenerateSceneImage(context.Background(), "a sunny garden", "1024x1024")
	if err != nil {
		t.Fatalf("GenerateSceneImage: %v", err)
	}
	if string(img) != string(imgBytes) {
		t.Errorf("image bytes = %v, want %v", img, imgBytes)
	}
}

func TestGenerateSceneImageEmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})
	_, err := c.GenerateSceneImage(context.Background(), "prompt", "512x512")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}
