package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	appinventory "github.com/techsolutions/salescore/internal/application/inventory"
	apppayment "github.com/techsolutions/salescore/internal/application/payment"
	appreport "github.com/techsolutions/salescore/internal/application/report"
	dompay "github.com/techsolutions/salescore/internal/domain/payment"
	domproduct "github.com/techsolutions/salescore/internal/domain/product"
	domreport "github.com/techsolutions/salescore/internal/domain/report"
	"github.com/techsolutions/salescore/internal/domain/user"
	"github.com/techsolutions/salescore/internal/observability"
)

const (
	componentHTTPHandler = "http_server"

	// Identity headers supplied by the auth layer in front of this core.
	headerUser       = "X-User"
	headerUserActive = "X-User-Active"
	headerUserRoles  = "X-User-Roles"
)

type Handler struct {
	payments  *apppayment.Service
	reports   *appreport.Service
	inventory *appinventory.Service
	log       observability.Logger
	tel       observability.Observability
}

func NewHandler(payments *apppayment.Service, reports *appreport.Service, inventory *appinventory.Service, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		payments:  payments,
		reports:   reports,
		inventory: inventory,
		log:       tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:       tel,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	h.handle(mux, "POST /payments", h.handleProcessPayment)
	h.handle(mux, "GET /payments/verify", h.handleVerifyTransaction)
	h.handle(mux, "GET /gateways", h.handleListGateways)
	h.handle(mux, "GET /gateways/status", h.handleGatewayStatus)
	h.handle(mux, "PUT /gateways/{id}", h.handleConfigureGateway)
	h.handle(mux, "POST /inventory/reduce", h.handleReduceStock)
	h.handle(mux, "POST /inventory/increase", h.handleIncreaseStock)
	h.handle(mux, "PUT /inventory/minimum", h.handleSetMinimumStock)
	h.handle(mux, "GET /products", h.handleListProducts)
	h.handle(mux, "POST /reports/sales", h.handleSalesReport)
	h.handle(mux, "POST /reports/income-expense", h.handleIncomeExpenseReport)
	h.handle(mux, "POST /reports/profitability", h.handleProfitabilityReport)
	h.handle(mux, "POST /reports/export", h.handleExportReport)
	h.handle(mux, "GET /health", h.handleHealth)

	return mux
}

// handle wires a route with the observability middleware, storing the
// pattern's path template on the context for low-cardinality metric labels.
func (h *Handler) handle(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	route := pattern
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		route = pattern[i+1:]
	}
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(contextWithRoute(r.Context(), route))
		observe(h.log, h.tel, handler).ServeHTTP(w, r)
	})
}

// requestingUser builds the per-request identity from the auth headers. A
// missing X-User header means no authenticated user.
func requestingUser(r *http.Request) *user.User {
	username := r.Header.Get(headerUser)
	if username == "" {
		return nil
	}
	var roles []string
	if raw := r.Header.Get(headerUserRoles); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	active := true
	if raw := r.Header.Get(headerUserActive); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			active = parsed
		}
	}
	return user.New(username, active, roles...)
}

type processPaymentRequest struct {
	GatewayID string          `json:"gatewayId"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

func (h *Handler) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.payments.Process(r.Context(), req.GatewayID, req.Amount, req.Reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type verifyResponse struct {
	GatewayID string `json:"gatewayId"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (h *Handler) handleVerifyTransaction(w http.ResponseWriter, r *http.Request) {
	gatewayID := r.URL.Query().Get("gateway")
	reference := r.URL.Query().Get("reference")

	status, err := h.payments.Verify(r.Context(), gatewayID, reference)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		GatewayID: strings.ToLower(gatewayID),
		Reference: reference,
		Status:    status,
	})
}

func (h *Handler) handleListGateways(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.payments.List())
}

func (h *Handler) handleGatewayStatus(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.payments.Status())
}

type configureGatewayRequest struct {
	Enabled bool `json:"enabled"`
}

type configureGatewayResponse struct {
	GatewayID string `json:"gatewayId"`
	Enabled   bool   `json:"enabled"`
}

func (h *Handler) handleConfigureGateway(w http.ResponseWriter, r *http.Request) {
	gatewayID := r.PathValue("id")

	var req configureGatewayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.payments.SetEnabled(r.Context(), gatewayID, req.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configureGatewayResponse{
		GatewayID: strings.ToLower(gatewayID),
		Enabled:   req.Enabled,
	})
}

type stockMutationRequest struct {
	ProductID string `json:"productoId"`
	Quantity  int    `json:"cantidad"`
}

func (h *Handler) handleReduceStock(w http.ResponseWriter, r *http.Request) {
	var req stockMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status, err := h.inventory.Reduce(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleIncreaseStock(w http.ResponseWriter, r *http.Request) {
	var req stockMutationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status, err := h.inventory.Increase(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type minimumStockRequest struct {
	ProductID    string `json:"productoId"`
	MinimumStock int    `json:"stockMinimo"`
}

func (h *Handler) handleSetMinimumStock(w http.ResponseWriter, r *http.Request) {
	var req minimumStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	status, err := h.inventory.SetMinimumThreshold(r.Context(), req.ProductID, req.MinimumStock)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventory.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type dateRangeRequest struct {
	From time.Time `json:"fechaInicio"`
	To   time.Time `json:"fechaFin"`
}

func (h *Handler) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	var req dateRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.reports.Sales(r.Context(), requestingUser(r), req.From, req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type incomeExpenseRequest struct {
	Month int `json:"mes"`
	Year  int `json:"anio"`
}

func (h *Handler) handleIncomeExpenseReport(w http.ResponseWriter, r *http.Request) {
	var req incomeExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.reports.IncomeExpense(r.Context(), requestingUser(r), req.Month, req.Year)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleProfitabilityReport(w http.ResponseWriter, r *http.Request) {
	var req dateRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := h.reports.Profitability(r.Context(), requestingUser(r), req.From, req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type exportReportRequest struct {
	ReportType string         `json:"tipoReporte"`
	Data       map[string]any `json:"datos"`
}

func (h *Handler) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req exportReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.reports.Export(r.Context(), requestingUser(r), req.ReportType, req.Data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domreport.ErrAccessDenied):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, dompay.ErrUnknownGateway),
		errors.Is(err, domproduct.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, dompay.ErrGatewayDisabled),
		errors.Is(err, dompay.ErrInvalidAmount),
		errors.Is(err, dompay.ErrInvalidReference),
		errors.Is(err, domproduct.ErrInvalidQuantity),
		errors.Is(err, domproduct.ErrInsufficientStock),
		errors.Is(err, domproduct.ErrNegativeThreshold):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
