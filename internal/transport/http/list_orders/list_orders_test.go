package listorders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/micromart/orders/internal/service/models/order"
)

type stubService struct {
	gotPage   int
	gotLimit  int
	gotStatus *order.Status
	page      *order.Page
	err       error
}

func (s *stubService) GetOrders(_ context.Context, page, limit int, status *order.Status) (*order.Page, error) {
	s.gotPage = page
	s.gotLimit = limit
	s.gotStatus = status

	return s.page, s.err
}

func TestListOrdersPassesQueryParams(t *testing.T) {
	svc := &stubService{page: &order.Page{
		Data: []order.Order{},
		Meta: order.PageMeta{Total: 5, Page: 2, LastPage: 3},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/orders?page=2&limit=2&status=CONFIRMED", nil)
	rec := httptest.NewRecorder()

	ListOrders(rec, req, svc)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotPage != 2 || svc.gotLimit != 2 {
		t.Fatalf("expected page=2 limit=2, got page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}
	if svc.gotStatus == nil || *svc.gotStatus != order.StatusConfirmed {
		t.Fatalf("expected status filter CONFIRMED, got %v", svc.gotStatus)
	}

	var body order.Page
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Meta.Total != 5 || body.Meta.LastPage != 3 {
		t.Fatalf("unexpected meta: %+v", body.Meta)
	}
}

func TestListOrdersDefaultsPagination(t *testing.T) {
	svc := &stubService{page: &order.Page{Data: []order.Order{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	ListOrders(rec, req, svc)

	if svc.gotPage != 1 || svc.gotLimit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", svc.gotPage, svc.gotLimit)
	}
	if svc.gotStatus != nil {
		t.Fatalf("expected no status filter, got %v", svc.gotStatus)
	}
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=SHIPPED", nil)
	rec := httptest.NewRecorder()

	ListOrders(rec, req, svc)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.gotPage != 0 {
		t.Fatal("service must not be called for an unknown status")
	}
}
