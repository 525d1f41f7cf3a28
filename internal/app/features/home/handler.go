package home

import (
	"io"
	"net/http"

	"go.uber.org/zap"
)

// DefaultGreeting is served when no greeting is configured.
const DefaultGreeting = "Hello Everyone🥳🥳🥳"

// Handler serves the landing response.
type Handler struct {
	Greeting string
	Log      *zap.Logger
}

func NewHandler(greeting string, logger *zap.Logger) *Handler {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Handler{
		Greeting: greeting,
		Log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – greeting                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, h.Greeting); err != nil {
		h.Log.Debug("write greeting", zap.Error(err))
	}
}
