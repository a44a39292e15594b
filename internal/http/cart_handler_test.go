package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceMock struct {
	cart *domain.Cart
	err  error

	removedProductID int64
}

func (c *cartServiceMock) GetCart(context.Context, string) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *cartServiceMock) AddToCart(_ context.Context, _ string, productID int64) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *cartServiceMock) RemoveFromCart(_ context.Context, _ string, productID int64) error {
	if c.err != nil {
		return c.err
	}
	c.removedProductID = productID
	return nil
}

func authedRequest(method, target string, body []byte) *http.Request {
	var request *http.Request
	if body != nil {
		request = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		request = httptest.NewRequest(method, target, nil)
	}

	// Add user identity to context
	ctx := context.WithValue(request.Context(), "user_id", "1")
	ctx = context.WithValue(ctx, "user_email", "demo@example.com")
	return request.WithContext(ctx)
}

func TestGetCart_Success(t *testing.T) {
	mock := &cartServiceMock{
		cart: &domain.Cart{
			UserID: "1",
			Items:  []domain.CartItem{{ProductID: 1, Quantity: 2}},
		},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.GetCart(recorder, authedRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1), cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGetCart_Unauthenticated(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil) // no identity in context

	handler.GetCart(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddItem_Success(t *testing.T) {
	mock := &cartServiceMock{
		cart: &domain.Cart{
			UserID: "1",
			Items:  []domain.CartItem{{ProductID: 7, Quantity: 1}},
		},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 7})

	handler.AddItem(recorder, authedRequest("POST", "/items", body))

	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestAddItem_InvalidBody(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()

	handler.AddItem(recorder, authedRequest("POST", "/items", []byte("not json")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddItem_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()
	body, _ := json.Marshal(AddItemRequestDTO{ProductID: 0})

	handler.AddItem(recorder, authedRequest("POST", "/items", body))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	mock := &cartServiceMock{}
	handler := NewCartHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()

	request := authedRequest("DELETE", "/items/7", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("product_id", "7")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.RemoveItem(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, int64(7), mock.removedProductID)
}

func TestRemoveItem_BadProductID(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()

	request := authedRequest("DELETE", "/items/abc", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("product_id", "abc")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.RemoveItem(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
