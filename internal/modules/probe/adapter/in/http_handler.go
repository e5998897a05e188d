package in

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	exportin "zetatrack/internal/modules/export/port/in"
	probedto "zetatrack/internal/modules/probe/dto"
	probein "zetatrack/internal/modules/probe/port/in"
	apperrors "zetatrack/internal/platform/errors"
)

const maxSnapshotBody = 2 << 20

// SnapshotRecorder counts pushed snapshots by outcome.
type SnapshotRecorder interface {
	RecordSnapshot(status string)
}

type HTTPHandler struct {
	probe    probein.Usecase
	toasts   exportin.Usecase
	metrics  http.Handler
	recorder SnapshotRecorder
	log      zerolog.Logger
}

func NewHTTPHandler(probe probein.Usecase, toasts exportin.Usecase, metrics http.Handler, recorder SnapshotRecorder, log zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{probe: probe, toasts: toasts, metrics: metrics, recorder: recorder, log: log}
}

func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/snapshot", h.snapshot).Methods(http.MethodPost)
	r.HandleFunc("/toast", h.toast).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods(http.MethodGet)
	}
	return r
}

// Serve listens on addr until ctx is cancelled.
func (h *HTTPHandler) Serve(ctx context.Context, addr string) error {
	access := h.log.With().Str("component", "http").Logger()
	server := &http.Server{
		Addr:              addr,
		Handler:           handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(access, h.Router())),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	h.log.Info().Str("addr", addr).Msg("snapshot endpoint listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	}
}

func (h *HTTPHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type snapshotPayload struct {
	HTML string `json:"html"`
}

func (h *HTTPHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.record("too_large")
			h.log.Warn().Int64("limit", tooLarge.Limit).Msg("snapshot rejected: body too large")
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": fmt.Sprintf("snapshot exceeds %d bytes", tooLarge.Limit)})
			return
		}
		h.record("read_error")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body"})
		return
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		payload := snapshotPayload{}
		if err := json.Unmarshal(body, &payload); err != nil {
			h.record("invalid")
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		body = []byte(payload.HTML)
	}

	if err := h.probe.Ingest(r.Context(), probedto.SnapshotInput{HTML: body}); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		h.record("rejected")
		h.log.Debug().Err(err).Msg("snapshot rejected")
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	h.record("accepted")
	w.WriteHeader(http.StatusAccepted)
}

func (h *HTTPHandler) toast(w http.ResponseWriter, r *http.Request) {
	if h.toasts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	current, err := h.toasts.CurrentToast(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !current.Visible {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    current.Message,
		"expires_at": current.ExpiresAt.UnixMilli(),
	})
}

func (h *HTTPHandler) record(status string) {
	if h.recorder != nil {
		h.recorder.RecordSnapshot(status)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
