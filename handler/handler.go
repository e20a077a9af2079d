package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
	"github.com/pr-poehali-dev/mini-magazin-site/service"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
	"github.com/pr-poehali-dev/mini-magazin-site/validation"
)

// Handler turns view intents, expressed as HTTP-style requests, into calls
// on the catalog service and renders the resulting state as JSON.
type Handler struct {
	svc      service.ServiceInterface
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: s, validate: validation.New(), logger: logger}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Products
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/filtered", h.ListFiltered).Methods("GET")
	r.HandleFunc("/products/{id:[0-9]+}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products/{id:[0-9]+}", h.UpdateProduct).Methods("PUT")
	r.HandleFunc("/products/{id:[0-9]+}", h.DeleteProduct).Methods("DELETE")
	r.HandleFunc("/products/{id:[0-9]+}/stock", h.SetInStock).Methods("POST")

	// Filter
	r.HandleFunc("/filter", h.GetFilter).Methods("GET")
	r.HandleFunc("/filter", h.SetFilter).Methods("PATCH")

	// Cart
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/list", h.ListCart).Methods("GET")

	// Draft
	r.HandleFunc("/draft", h.GetDraft).Methods("GET")
	r.HandleFunc("/draft", h.PatchDraft).Methods("PATCH")
	r.HandleFunc("/draft/new", h.OpenCreateDraft).Methods("POST")
	r.HandleFunc("/draft/edit/{id:[0-9]+}", h.OpenEditDraft).Methods("POST")
	r.HandleFunc("/draft/sizes", h.ToggleDraftSize).Methods("POST")
	r.HandleFunc("/draft/save", h.SaveDraft).Methods("POST")
	r.HandleFunc("/draft/cancel", h.CancelDraft).Methods("POST")

	// View mode
	r.HandleFunc("/admin", h.GetAdmin).Methods("GET")
	r.HandleFunc("/admin", h.SetAdmin).Methods("POST")
}

// --- request / response shapes ---
type productReq struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Category    *models.Category `json:"category" validate:"omitnil,oneof=clothing accessories footwear"`
	Sizes       models.Sizes     `json:"sizes"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
	InStock     *bool            `json:"in_stock"`
}

// applyTo overwrites the fields present in the request and keeps the rest of d.
func (req productReq) applyTo(d models.DraftProduct) models.DraftProduct {
	d = d.Apply(models.DraftPatch{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Description: req.Description,
		InStock:     req.InStock,
	})
	if req.Sizes != nil {
		d.Sizes = req.Sizes.Clone()
	}
	return d
}

type cartReq struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

type stockReq struct {
	InStock bool `json:"in_stock"`
}

type sizeReq struct {
	Size    string `json:"size" validate:"required"`
	Checked bool   `json:"checked"`
}

type adminReq struct {
	On bool `json:"on"`
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": validation.FormatValidationError(err)})
		return false
	}
	return true
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) {
	code := mapErrorCode(err)
	if code == http.StatusBadRequest && errors.Is(err, store.ErrInvalidProduct) {
		writeJSON(w, code, map[string]interface{}{"errors": validation.FormatValidationError(err)})
		return
	}
	if code == http.StatusInternalServerError {
		h.logger.Error("unexpected error", zap.Error(err))
	}
	writeErr(w, code, err.Error())
}

func (h *Handler) draftState() map[string]interface{} {
	snap, open := h.svc.Draft()
	return map[string]interface{}{"open": open, "draft": snap}
}

// --- products ---

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Products())
}

// ListFiltered handles GET /products/filtered
func (h *Handler) ListFiltered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"filter": h.svc.Filter(), "products": h.svc.Filtered()})
}

// GetProduct handles GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.GetProduct(pathID(r))
	if !ok {
		writeErr(w, http.StatusNotFound, service.ErrProductNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !h.decode(w, r, &req) {
		return
	}
	p, err := h.svc.CreateProduct(req.applyTo(models.NewDraft()))
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /products/{id}. The id in the path wins over
// any id in the body; fields missing from the body keep their stored value.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if !h.decode(w, r, &req) {
		return
	}
	id := pathID(r)
	current, ok := h.svc.GetProduct(id)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]bool{"updated": false})
		return
	}
	p := req.applyTo(current.Draft()).WithID(id)
	writeJSON(w, http.StatusOK, map[string]bool{"updated": h.svc.UpdateProduct(p)})
}

// DeleteProduct handles DELETE /products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": h.svc.DeleteProduct(pathID(r))})
}

// SetInStock handles POST /products/{id}/stock
func (h *Handler) SetInStock(w http.ResponseWriter, r *http.Request) {
	var req stockReq
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": h.svc.SetInStock(pathID(r), req.InStock)})
}

// --- filter ---

// GetFilter handles GET /filter
func (h *Handler) GetFilter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Filter())
}

// SetFilter handles PATCH /filter
// body: { "category": "clothing" }, omitted fields keep their value
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var patch models.FilterPatch
	if !h.decode(w, r, &patch) {
		return
	}
	state := h.svc.SetFilter(patch)
	writeJSON(w, http.StatusOK, map[string]interface{}{"filter": state, "products": h.svc.Filtered()})
}

// --- cart ---

// AddToCart handles POST /cart/add
// body: { "product_id": 1 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.AddToCartByID(req.ProductID); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CartSummary())
}

// RemoveFromCart handles POST /cart/remove
// body: { "product_id": 1 }
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if !h.decode(w, r, &req) {
		return
	}
	h.svc.RemoveFromCart(req.ProductID)
	writeJSON(w, http.StatusOK, h.svc.CartSummary())
}

// ListCart handles GET /cart/list
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CartSummary())
}

// --- draft ---

// GetDraft handles GET /draft
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.draftState())
}

// OpenCreateDraft handles POST /draft/new
func (h *Handler) OpenCreateDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.OpenCreateDraft(); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftState())
}

// OpenEditDraft handles POST /draft/edit/{id}
func (h *Handler) OpenEditDraft(w http.ResponseWriter, r *http.Request) {
	p, ok := h.svc.GetProduct(pathID(r))
	if !ok {
		writeErr(w, http.StatusNotFound, service.ErrProductNotFound.Error())
		return
	}
	if err := h.svc.OpenEditDraft(p); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftState())
}

// PatchDraft handles PATCH /draft
func (h *Handler) PatchDraft(w http.ResponseWriter, r *http.Request) {
	var patch models.DraftPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.svc.PatchDraft(patch); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftState())
}

// ToggleDraftSize handles POST /draft/sizes
// body: { "size": "M", "checked": true }
func (h *Handler) ToggleDraftSize(w http.ResponseWriter, r *http.Request) {
	var req sizeReq
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.svc.ToggleDraftSize(req.Size, req.Checked); err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.draftState())
}

// SaveDraft handles POST /draft/save
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.SaveDraft()
	if err != nil {
		h.writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CancelDraft handles POST /draft/cancel
func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.svc.CancelDraft()
	writeJSON(w, http.StatusOK, h.draftState())
}

// --- view mode ---

// GetAdmin handles GET /admin
func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"admin": h.svc.IsAdmin()})
}

// SetAdmin handles POST /admin
func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminReq
	if !h.decode(w, r, &req) {
		return
	}
	h.svc.SetAdmin(req.On)
	writeJSON(w, http.StatusOK, map[string]bool{"admin": h.svc.IsAdmin()})
}
