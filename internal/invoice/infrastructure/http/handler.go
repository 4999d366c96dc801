package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	customerapp "github.com/AI-guru11/Mo7/internal/customer/application"
	"github.com/AI-guru11/Mo7/internal/invoice/application"
	invdomain "github.com/AI-guru11/Mo7/internal/invoice/domain"
	orderapp "github.com/AI-guru11/Mo7/internal/order/application"
)

// Handler serves rendered invoices for committed orders. The preview route
// returns the document structure as JSON so a client can lay it out itself;
// the download route streams the paginated text rendering as an attachment.
type Handler struct {
	log        *slog.Logger
	orders     *orderapp.Service
	customers  *customerapp.Service
	generator  *application.Generator
	writer     application.Writer
	archiveDir string
	tracer     trace.Tracer
}

// NewHandler wires the invoice routes. archiveDir may be empty, in which
// case downloads are streamed without keeping a copy on disk.
func NewHandler(log *slog.Logger, orders *orderapp.Service, customers *customerapp.Service, generator *application.Generator, archiveDir string) *Handler {
	return &Handler{
		log:        log,
		orders:     orders,
		customers:  customers,
		generator:  generator,
		archiveDir: archiveDir,
		tracer:     otel.Tracer("invoice-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/orders/{id}/invoice", h.previewInvoice)
	r.Get("/orders/{id}/invoice/download", h.downloadInvoice)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) previewInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PreviewInvoice")
	defer span.End()

	doc, _, err := h.build(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

func (h *Handler) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "DownloadInvoice")
	defer span.End()

	doc, filename, err := h.build(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.archiveDir != "" {
		if path, err := h.writer.Save(doc, h.archiveDir, filename); err != nil {
			h.log.Warn("invoice archive failed", "err", err, "filename", filename)
		} else {
			h.log.Info("invoice archived", "path", path)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.writer.WriteTo(w, doc); err != nil {
		h.log.Error("invoice stream failed", "err", err)
	}
}

func (h *Handler) build(ctx context.Context, orderID string) (doc invdomain.Document, filename string, err error) {
	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		return invdomain.Document{}, "", err
	}
	c, err := h.customers.Get(ctx, o.CustomerID)
	if err != nil {
		return invdomain.Document{}, "", err
	}
	return h.generator.Render(o, c, o.Items), application.Filename(o, c), nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderapp.ErrOrderNotFound), errors.Is(err, customerapp.ErrCustomerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.log.Error("invoice build failed", "err", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	}
}
