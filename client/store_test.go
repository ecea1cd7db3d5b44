package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-store/client"
)

type recordNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

const listBody = `{"success":true,"data":[
	{"id":2,"name":"Notebook","price":"3.00","image_url":"http://x/n.png","created_at":"2024-05-01T12:01:00Z"},
	{"id":1,"name":"Pen","price":"1.50","image_url":"http://x/y.png","created_at":"2024-05-01T12:00:00Z"}
]}`

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/products", r.URL.Path)
		writeJSON(w, http.StatusOK, listBody)
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)

	var sawLoading bool
	store.Subscribe(func(st client.State) {
		if st.Loading {
			sawLoading = true
		}
	})

	require.NoError(t, store.FetchProducts())

	st := store.State()
	require.Len(t, st.Products, 2)
	assert.Equal(t, client.Product{ID: 2, Name: "Notebook", Price: "3.00", ImageURL: "http://x/n.png"}, st.Products[0])
	assert.Equal(t, "http://x/y.png", st.Products[1].ImageURL, "image_url must map to ImageURL")
	assert.True(t, sawLoading, "loading must flip on while the action runs")
	assert.False(t, st.Loading, "loading must end false")
	assert.Empty(t, st.Error)
}

func TestFetchProducts_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)

	err := store.FetchProducts()
	require.Error(t, err)

	st := store.State()
	assert.Equal(t, "Something went wrong", st.Error)
	assert.False(t, st.Loading)
	assert.Equal(t, []string{"Something went wrong"}, notifier.errors)
}

func TestFetchProducts_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, `{"error":"Too Many Requests"}`)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL, nil, nil)

	err := store.FetchProducts()
	require.Error(t, err)
	assert.Equal(t, "Rate limit exceeded", store.State().Error)
}

func TestDeleteProduct_NotFoundLeavesListIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusOK, listBody)
		case r.Method == http.MethodDelete:
			writeJSON(w, http.StatusNotFound, `{"success":false,"message":"Product not found"}`)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)
	require.NoError(t, store.FetchProducts())

	err := store.DeleteProduct(5)
	require.Error(t, err)

	st := store.State()
	assert.Len(t, st.Products, 2, "a failed delete must not remove local entries")
	assert.Equal(t, "Product not found", st.Error)
	assert.Equal(t, []string{"Product not found"}, notifier.errors)
	assert.False(t, st.Loading)
}

func TestDeleteProduct_FiltersLocally(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, listBody)
		case http.MethodDelete:
			deleted = r.URL.Path
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":1,"name":"Pen","price":"1.50","image_url":"http://x/y.png"}}`)
		}
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)
	require.NoError(t, store.FetchProducts())

	require.NoError(t, store.DeleteProduct(1))

	assert.Equal(t, "/api/products/1", deleted)
	st := store.State()
	require.Len(t, st.Products, 1)
	assert.Equal(t, int64(2), st.Products[0].ID)
	assert.Equal(t, []string{"Product deleted successfully"}, notifier.successes)
}

func TestAddProduct_ReadsFormAndRefreshes(t *testing.T) {
	var created map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":3,"name":"Stapler","price":"4.25","image_url":"http://x/s.png"}}`)
		case http.MethodGet:
			writeJSON(w, http.StatusOK, listBody)
		}
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)
	store.SetFormData(client.FormData{Name: "Stapler", Price: "4.25", ImageURL: "http://x/s.png"})

	require.NoError(t, store.AddProduct())

	assert.Equal(t, map[string]string{
		"name":      "Stapler",
		"price":     "4.25",
		"image_url": "http://x/s.png",
	}, created, "request body uses the server's field names")

	st := store.State()
	assert.Len(t, st.Products, 2, "list refreshed wholesale from the server")
	assert.Equal(t, client.FormData{}, st.FormData, "form resets after a successful add")
	assert.Equal(t, []string{"Product added successfully"}, notifier.successes)
}

func TestAddProduct_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"message":"Missing required fields"}`)
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)
	store.SetFormData(client.FormData{Price: "1.50"})

	err := store.AddProduct()
	require.Error(t, err)
	assert.Equal(t, "Missing required fields", store.State().Error)
	assert.Equal(t, client.FormData{Price: "1.50"}, store.State().FormData, "form survives a failed add")
}

func TestFetchProduct_SeedsCurrentAndForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":1,"name":"Pen","price":"1.50","image_url":"http://x/y.png"}}`)
	}))
	defer srv.Close()

	store := client.NewStore(srv.URL, nil, nil)
	require.NoError(t, store.FetchProduct(1))

	st := store.State()
	require.NotNil(t, st.CurrentProduct)
	assert.Equal(t, client.Product{ID: 1, Name: "Pen", Price: "1.50", ImageURL: "http://x/y.png"}, *st.CurrentProduct)
	assert.Equal(t, client.FormData{Name: "Pen", Price: "1.50", ImageURL: "http://x/y.png"}, st.FormData)
}

func TestUpdateProduct_UsesFormValues(t *testing.T) {
	var sent map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/products/1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":1,"name":"Fancy Pen","price":"2.00","image_url":"http://x/y.png"}}`)
	}))
	defer srv.Close()

	notifier := &recordNotifier{}
	store := client.NewStore(srv.URL, nil, notifier)
	store.SetFormData(client.FormData{Name: "Fancy Pen", Price: "2.00", ImageURL: "http://x/y.png"})

	require.NoError(t, store.UpdateProduct(1))

	assert.Equal(t, "Fancy Pen", sent["name"])
	st := store.State()
	require.NotNil(t, st.CurrentProduct)
	assert.Equal(t, "Fancy Pen", st.CurrentProduct.Name)
	assert.Equal(t, "2.00", st.CurrentProduct.Price)
	assert.Equal(t, []string{"Product updated successfully"}, notifier.successes)
}
