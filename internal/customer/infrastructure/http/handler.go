package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/AI-guru11/Mo7/internal/customer/application"
	"github.com/AI-guru11/Mo7/internal/customer/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("customer-http"),
	}
}

// customerView decorates a stored customer with its effective
// classification, which diverges from the stored status once debt crosses
// the risk threshold.
type customerView struct {
	domain.Customer
	Classification domain.Status `json:"classification"`
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/customers", h.listCustomers)
	r.Get("/customers/{id}", h.getCustomer)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListCustomers")
	defer span.End()

	customers, err := h.service.List(ctx)
	if err != nil {
		h.log.Error("customer list failed", "err", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, customerView{Customer: c, Classification: h.service.Classify(c)})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCustomer")
	defer span.End()

	c, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, application.ErrCustomerNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error("customer fetch failed", "err", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(customerView{Customer: c, Classification: h.service.Classify(c)})
}
