package http

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/AbdelkaderTk/go-shop/internal/invoice"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InvoiceService renders an order's invoice into the response stream.
type InvoiceService interface {
	RenderInvoice(ctx context.Context, orderID uuid.UUID, requestingUserID string, response io.Writer) error
}

type InvoiceHandler struct {
	invoices InvoiceService
	timeout  time.Duration
}

func NewInvoiceHandler(invoices InvoiceService, timeout time.Duration) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		timeout:  timeout,
	}
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a UUID")
		return
	}

	// Headers must go out before the renderer starts streaming; once bytes
	// flow, the status is committed.
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+invoice.Filename(orderID)+`"`)

	sink := &countingWriter{w: w}
	if err := h.invoices.RenderInvoice(ctx, orderID, userID, sink); err != nil {
		if sink.n > 0 {
			// bytes already reached the client; appending a json error
			// would only corrupt the partial pdf
			log.Printf("invoice stream aborted for order %s: %v", orderID, err)
			return
		}
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		handleServiceError(w, err)
		return
	}
}

// countingWriter tracks whether any response bytes have gone out, which
// decides if an error can still be reported as json.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
