//go:build e2e

package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const (
	defaultPromotions = `{"response":[
		{"promotion_id":"7","name":"Spring$SUSHI20","auto_apply":"0",
		 "params":{"discount_value":"20","result_type":3,"conditions":[{"type":2,"id":"102"}]}}
	]}`
	defaultProducts = `{"response":[
		{"product_id":"101","product_name":"Philadelphia","menu_category_id":"4","price":{"1":"2900"}},
		{"product_id":"102","product_name":"Green tea","menu_category_id":"5","price":{"1":"5500"}}
	]}`
	defaultCategories = `{"response":[{"category_id":"4","category_name":"Rolls"},{"category_id":"5","category_name":"Drinks"}]}`
	defaultClient     = `{"response":[{"client_id":"42","firstname":"Aziza","phone":"901234567","bonus":"500000"}]}`
	defaultSpots      = `{"response":[{"spot_id":1,"name":"Chilonzor","address":"Bunyodkor 1","lat":"41.28","lng":"69.20"}]}`
)

// FakePOS serves canned POS reads under /api/<method> and records order
// submissions posted to /orders.
type FakePOS struct {
	srv *httptest.Server

	mu          sync.Mutex
	reads       map[string]string
	orderStatus int
	orderReply  string
	orders      []string
}

func NewFakePOS() *FakePOS {
	f := &FakePOS{}
	f.Reset()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", f.serveRead)
	mux.HandleFunc("/orders", f.serveOrder)
	f.srv = httptest.NewServer(mux)
	return f
}

func (f *FakePOS) BaseURL() string  { return f.srv.URL + "/api" }
func (f *FakePOS) OrderURL() string { return f.srv.URL + "/orders" }
func (f *FakePOS) Close()           { f.srv.Close() }

// Reset restores the default catalog and an accepting order endpoint.
func (f *FakePOS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = map[string]string{
		"clients.getPromotions": defaultPromotions,
		"menu.getProducts":      defaultProducts,
		"menu.getCategories":    defaultCategories,
		"clients.getClient":     defaultClient,
		"spots.getSpots":        defaultSpots,
	}
	f.orderStatus = http.StatusOK
	f.orderReply = `{"ok":true,"order_id":5521}`
	f.orders = nil
}

func (f *FakePOS) SetRead(method, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[method] = body
}

func (f *FakePOS) FailOrders(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderStatus = status
	f.orderReply = body
}

// Orders returns the raw order payloads received so far.
func (f *FakePOS) Orders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.orders...)
}

func (f *FakePOS) serveRead(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/api/")
	f.mu.Lock()
	body, ok := f.reads[method]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (f *FakePOS) serveOrder(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	status, reply := f.orderStatus, f.orderReply
	if status >= 200 && status < 300 {
		f.orders = append(f.orders, string(raw))
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}
