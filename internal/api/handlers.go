package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/EphemeralEpoch/smart-book-gist/internal/chat"
	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
	"github.com/EphemeralEpoch/smart-book-gist/internal/middleware"
)

// Gister is the slice of the API client the front-end needs.
type Gister interface {
	SendChat(ctx context.Context, messages []chat.Message, params chat.Params) (chat.Document, error)
}

type summarizeRequest struct {
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Model       string   `json:"model,omitempty"`
}

func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "smart-book-gist",
			"status":  "ok",
			"message": "Hello — the container is running and listening on the expected port.",
		})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// Summarize calls the chat API synchronously and returns the first choice's
// message content, or the whole response document when extraction fails.
// A body that is missing or not valid JSON is tolerated and defaults apply.
func Summarize(cfg config.Config, gist Gister, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body summarizeRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		prompt := body.Prompt
		if prompt == "" {
			prompt = "No prompt provided"
		}
		temperature := 0.2
		if body.Temperature != nil {
			temperature = *body.Temperature
		}
		maxTokens := 800
		if body.MaxTokens != nil {
			maxTokens = *body.MaxTokens
		}
		model := body.Model
		if model == "" {
			model = cfg.Model
		}

		doc, err := gist.SendChat(r.Context(), chat.BuildConversation(prompt), chat.Params{
			Model:       model,
			Temperature: temperature,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			logger.Error().
				Str("rid", middleware.RequestIDFrom(r.Context())).
				Err(err).
				Msg("summarize failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "Failed to call Groq API",
				"details": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"prompt": prompt,
			"gist":   extractGist(doc),
		})
	}
}

// extractGist probes choices[0].message.content; any miss along the way falls
// back to the raw document.
func extractGist(doc chat.Document) any {
	obj, ok := doc.(map[string]any)
	if !ok {
		return doc
	}
	choices, ok := obj["choices"].([]any)
	if !ok || len(choices) == 0 {
		return doc
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return doc
	}
	msg, ok := first["message"].(map[string]any)
	if !ok {
		return doc
	}
	content, ok := msg["content"].(string)
	if !ok || content == "" {
		return doc
	}
	return content
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
