// Package client is the consumer-side product store: an observable
// in-memory mirror of server state for a UI, updated only through its
// action methods.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

const (
	rateLimitMessage = "Rate limit exceeded"
	genericMessage   = "Something went wrong"
)

// Product is the view-model projection of a server product
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// FormData is the mutable draft backing the product form
type FormData struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
}

// State is the full store state handed to subscribers
type State struct {
	Products       []Product
	CurrentProduct *Product
	FormData       FormData
	Loading        bool
	Error          string
}

// Notifier receives the transient success/error notifications actions emit
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Store owns the client-side state. All mutations go through the mutex, but
// two overlapping actions still share the single Loading flag; that race is
// accepted, matching how the UI has always behaved.
type Store struct {
	baseURL  string
	httpc    *http.Client
	notifier Notifier

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func NewStore(baseURL string, httpc *http.Client, notifier Notifier) *Store {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Store{
		baseURL:  baseURL,
		httpc:    httpc,
		notifier: notifier,
		state:    State{Products: []Product{}},
	}
}

// Subscribe registers fn to run after every state change
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// State returns a snapshot; the products slice is copied so callers cannot
// mutate store state through it.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) SetFormData(form FormData) {
	s.mutate(func(st *State) { st.FormData = form })
}

func (s *Store) ResetForm() {
	s.mutate(func(st *State) { st.FormData = FormData{} })
}

// FetchProducts replaces the whole product list from the server
func (s *Store) FetchProducts() error {
	s.setLoading(true)
	defer s.setLoading(false)

	var rows []serverProduct
	if err := s.doRequest(http.MethodGet, "/api/products", nil, &rows); err != nil {
		s.fail(err)
		return err
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, toViewModel(row))
	}

	s.mutate(func(st *State) {
		st.Products = products
		st.Error = ""
	})
	return nil
}

// FetchProduct loads one product into CurrentProduct and seeds the form
// with its fields.
func (s *Store) FetchProduct(id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var row serverProduct
	if err := s.doRequest(http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &row); err != nil {
		s.fail(err)
		return err
	}

	product := toViewModel(row)
	s.mutate(func(st *State) {
		st.CurrentProduct = &product
		st.FormData = FormData{Name: product.Name, Price: product.Price, ImageURL: product.ImageURL}
		st.Error = ""
	})
	return nil
}

// AddProduct creates a product from whatever the form holds right now,
// then refreshes the full list and clears the form.
func (s *Store) AddProduct() error {
	s.setLoading(true)
	defer s.setLoading(false)

	form := s.State().FormData
	var created serverProduct
	if err := s.doRequest(http.MethodPost, "/api/products", formBody(form), &created); err != nil {
		s.fail(err)
		return err
	}

	if err := s.FetchProducts(); err != nil {
		return err
	}
	s.ResetForm()
	s.notifier.Success("Product added successfully")
	return nil
}

// UpdateProduct replaces the product's fields with the current form values
func (s *Store) UpdateProduct(id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	form := s.State().FormData
	var updated serverProduct
	if err := s.doRequest(http.MethodPut, fmt.Sprintf("/api/products/%d", id), formBody(form), &updated); err != nil {
		s.fail(err)
		return err
	}

	product := toViewModel(updated)
	s.mutate(func(st *State) {
		st.CurrentProduct = &product
		st.Error = ""
	})
	s.notifier.Success("Product updated successfully")
	return nil
}

// DeleteProduct removes the product server-side, then filters it out of the
// local list instead of refetching.
func (s *Store) DeleteProduct(id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.doRequest(http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil); err != nil {
		s.fail(err)
		return err
	}

	s.mutate(func(st *State) {
		kept := st.Products[:0:0]
		for _, p := range st.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		st.Products = kept
		st.Error = ""
	})
	s.notifier.Success("Product deleted successfully")
	return nil
}

// serverProduct is the wire shape; toViewModel is the only place the two
// naming conventions meet.
type serverProduct struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

func toViewModel(p serverProduct) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}

type createBody struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

func formBody(form FormData) *createBody {
	return &createBody{Name: form.Name, Price: form.Price, ImageURL: form.ImageURL}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// apiError is a non-2xx response that still reached the server
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (s *Store) doRequest(method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr != nil && resp.StatusCode < http.StatusBadRequest {
		return decodeErr
	}

	if resp.StatusCode >= http.StatusBadRequest {
		message := envelope.Message
		if message == "" {
			message = envelope.Error
		}
		return &apiError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

// classify turns any action failure into the message shown to the user
func classify(err error) string {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests {
			return rateLimitMessage
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return genericMessage
}

func (s *Store) fail(err error) {
	msg := classify(err)
	s.mutate(func(st *State) { st.Error = msg })
	s.notifier.Error(msg)
}

func (s *Store) setLoading(v bool) {
	s.mutate(func(st *State) { st.Loading = v })
}

func (s *Store) mutate(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.snapshotLocked()
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (s *Store) snapshotLocked() State {
	snapshot := s.state
	snapshot.Products = append([]Product(nil), s.state.Products...)
	if s.state.CurrentProduct != nil {
		cp := *s.state.CurrentProduct
		snapshot.CurrentProduct = &cp
	}
	return snapshot
}
