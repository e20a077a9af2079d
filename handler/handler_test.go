package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	models "github.com/pr-poehali-dev/mini-magazin-site/model"
	"github.com/pr-poehali-dev/mini-magazin-site/service"
	"github.com/pr-poehali-dev/mini-magazin-site/store"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	st, err := store.NewMemoryStore(store.DefaultSeed()...)
	require.NoError(t, err)

	r := mux.NewRouter()
	NewHandler(service.NewService(st, zap.NewNop()), zap.NewNop()).RegisterRoutes(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}

type filteredResp struct {
	Filter   models.FilterState `json:"filter"`
	Products []models.Product   `json:"products"`
}

func names(products []models.Product) []string {
	out := []string{}
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestSetFilter_SeedScenarios(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "PATCH", "/filter", `{"category":"clothing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp filteredResp
	decodeInto(t, rec, &resp)
	assert.Equal(t, []string{"Стильный худи", "Базовая футболка", "Джинсы"}, names(resp.Products))

	rec = do(r, "PATCH", "/filter", `{"category":"all","size":"ONE SIZE"}`)
	resp = filteredResp{}
	decodeInto(t, rec, &resp)
	assert.Equal(t, []string{"Модные очки", "Рюкзак"}, names(resp.Products))

	rec = do(r, "PATCH", "/filter", `{"size":"all","search_text":"кросс"}`)
	resp = filteredResp{}
	decodeInto(t, rec, &resp)
	assert.Equal(t, []string{"Кроссовки"}, names(resp.Products))

	rec = do(r, "GET", "/products/filtered", "")
	resp = filteredResp{}
	decodeInto(t, rec, &resp)
	assert.Equal(t, "кросс", resp.Filter.SearchText)
	assert.Len(t, resp.Products, 1)
}

func TestAddToCart(t *testing.T) {
	r := newRouter(t)

	require.Equal(t, http.StatusOK, do(r, "POST", "/cart/add", `{"product_id":1}`).Code)
	rec := do(r, "POST", "/cart/add", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum models.CartSummary
	decodeInto(t, rec, &sum)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, 2, sum.Items[0].Quantity)
	assert.Equal(t, 2, sum.TotalItems)
	assert.True(t, sum.TotalPrice.Equal(decimal.NewFromInt(5980)))

	assert.Equal(t, http.StatusConflict, do(r, "POST", "/cart/add", `{"product_id":5}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, "POST", "/cart/add", `{"product_id":77}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/cart/add", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "POST", "/cart/add", `not json`).Code)

	rec = do(r, "POST", "/cart/remove", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sum = models.CartSummary{}
	decodeInto(t, rec, &sum)
	assert.Empty(t, sum.Items)
	assert.True(t, sum.TotalPrice.IsZero())
}

func TestCreateProduct(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "POST", "/products", `{"name":"","price":100}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var verr map[string]map[string]string
	decodeInto(t, rec, &verr)
	assert.Equal(t, "name is required", verr["errors"]["name"])

	rec = do(r, "POST", "/products", `{"name":"Шапка","price":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "POST", "/products", `{"name":"Шапка","price":500,"category":"hats"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, "POST", "/products", `{"name":"Шапка","price":500}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p models.Product
	decodeInto(t, rec, &p)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, models.Clothing, p.Category)
	assert.Equal(t, models.Sizes{models.OneSize}, p.Sizes)
	assert.True(t, p.InStock)

	var list []models.Product
	decodeInto(t, do(r, "GET", "/products", ""), &list)
	assert.Len(t, list, 7)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "PUT", "/products/2", `{"name":"Очки","price":1490,"category":"accessories","sizes":["ONE SIZE"],"in_stock":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":true}`, rec.Body.String())

	var p models.Product
	decodeInto(t, do(r, "GET", "/products/2", ""), &p)
	assert.Equal(t, "Очки", p.Name)
	assert.False(t, p.InStock)

	rec = do(r, "PUT", "/products/99", `{"name":"x","price":1}`)
	assert.JSONEq(t, `{"updated":false}`, rec.Body.String())

	assert.JSONEq(t, `{"deleted":true}`, do(r, "DELETE", "/products/2", "").Body.String())
	assert.JSONEq(t, `{"deleted":false}`, do(r, "DELETE", "/products/2", "").Body.String())
	assert.Equal(t, http.StatusNotFound, do(r, "GET", "/products/2", "").Code)
}

func TestUpdateProduct_PartialKeepsStoredFields(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "PUT", "/products/5", `{"name":"Рюкзак городской","price":3490}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":true}`, rec.Body.String())

	var p models.Product
	decodeInto(t, do(r, "GET", "/products/5", ""), &p)
	assert.Equal(t, "Рюкзак городской", p.Name)
	assert.Equal(t, models.Accessories, p.Category)
	assert.Equal(t, models.Sizes{models.OneSize}, p.Sizes)
	assert.False(t, p.InStock)

	assert.Equal(t, http.StatusConflict, do(r, "POST", "/cart/add", `{"product_id":5}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, "PUT", "/products/5", `{"category":""}`).Code)
}

func TestCreateProduct_TinyPrice(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "POST", "/products", `{"name":"x","price":"1e-400"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p models.Product
	decodeInto(t, rec, &p)
	assert.True(t, p.Price.IsPositive())
}

func TestSetInStock(t *testing.T) {
	r := newRouter(t)

	assert.JSONEq(t, `{"updated":true}`, do(r, "POST", "/products/5/stock", `{"in_stock":true}`).Body.String())
	assert.Equal(t, http.StatusOK, do(r, "POST", "/cart/add", `{"product_id":5}`).Code)
}

type draftResp struct {
	Open  bool `json:"open"`
	Draft struct {
		State     string              `json:"state"`
		ProductID int64               `json:"product_id"`
		Draft     models.DraftProduct `json:"draft"`
	} `json:"draft"`
}

func TestDraftCreateFlow(t *testing.T) {
	r := newRouter(t)

	rec := do(r, "POST", "/draft/new", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d draftResp
	decodeInto(t, rec, &d)
	assert.True(t, d.Open)
	assert.Equal(t, "creating", d.Draft.State)

	assert.Equal(t, http.StatusConflict, do(r, "POST", "/draft/new", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, "POST", "/draft/edit/1", "").Code)

	require.Equal(t, http.StatusOK, do(r, "PATCH", "/draft", `{"name":"Ремень"}`).Code)
	require.Equal(t, http.StatusBadRequest, do(r, "POST", "/draft/save", "").Code)

	d = draftResp{}
	decodeInto(t, do(r, "GET", "/draft", ""), &d)
	assert.True(t, d.Open)

	require.Equal(t, http.StatusOK, do(r, "PATCH", "/draft", `{"price":1290,"category":"accessories"}`).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/sizes", `{"size":"M","checked":true}`).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/sizes", `{"size":"M","checked":true}`).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/sizes", `{"size":"L","checked":true}`).Code)

	rec = do(r, "POST", "/draft/save", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p models.Product
	decodeInto(t, rec, &p)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, models.Accessories, p.Category)
	assert.Equal(t, models.Sizes{"M", "L"}, p.Sizes)

	d = draftResp{}
	decodeInto(t, do(r, "GET", "/draft", ""), &d)
	assert.False(t, d.Open)
	assert.Equal(t, "closed", d.Draft.State)
}

func TestDraftEditFlow(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusNotFound, do(r, "POST", "/draft/edit/42", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, "PATCH", "/draft", `{"name":"x"}`).Code)

	rec := do(r, "POST", "/draft/edit/6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var d draftResp
	decodeInto(t, rec, &d)
	assert.Equal(t, "editing", d.Draft.State)
	assert.Equal(t, int64(6), d.Draft.ProductID)
	assert.Equal(t, "Джинсы", d.Draft.Draft.Name)

	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/sizes", `{"size":"36","checked":false}`).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/cancel", "").Code)

	var p models.Product
	decodeInto(t, do(r, "GET", "/products/6", ""), &p)
	assert.True(t, p.Sizes.Has("36"))

	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/edit/6", "").Code)
	require.Equal(t, http.StatusOK, do(r, "PATCH", "/draft", `{"in_stock":false}`).Code)
	require.Equal(t, http.StatusOK, do(r, "POST", "/draft/save", "").Code)

	assert.Equal(t, http.StatusConflict, do(r, "POST", "/cart/add", `{"product_id":6}`).Code)
}

func TestAdmin(t *testing.T) {
	r := newRouter(t)

	assert.JSONEq(t, `{"admin":false}`, do(r, "GET", "/admin", "").Body.String())
	assert.JSONEq(t, `{"admin":true}`, do(r, "POST", "/admin", `{"on":true}`).Body.String())
}

func TestMapErrorCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, mapErrorCode(assert.AnError))
	assert.Equal(t, http.StatusNotFound, mapErrorCode(service.ErrProductNotFound))
}
