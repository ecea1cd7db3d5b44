package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	productapp "product-store/application/product"
	"product-store/cmd/config"
	"product-store/constant"
	"product-store/model"
	"product-store/thirdparty/shield"
	"product-store/utils/errors"
	validatorx "product-store/utils/validator"
)

type RestHandler struct {
	ProductApp productapp.ProductApp
}

func NewTransport(productApp productapp.ProductApp, gate shield.Client, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		ProductApp: productApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Product routes
	router.HandleFunc("/api/products", rh.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/api/products", rh.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/api/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{id:[0-9]+}", rh.UpdateProduct).Methods(http.MethodPut)
	router.HandleFunc("/api/products/{id:[0-9]+}", rh.DeleteProduct).Methods(http.MethodDelete)

	// In production the server also hosts the built front end; registered
	// after the API routes so those always take precedence.
	if cfg.IsProduction() {
		router.PathPrefix("/").Handler(spaHandler{
			staticPath: cfg.Server.StaticDir,
			indexPath:  cfg.Server.IndexFile,
		})
	}

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(ProtectMiddleware(gate, cfg.Shield.RequestCost))

	return router
}

// ListProducts handler
// @Summary List products
// @Description List all products, newest first
// @Tags Products
// @Produce json
// @Success 200 {object} model.SuccessResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	res, err := s.ProductApp.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// GetProduct handler
// @Summary Get product
// @Description Get a single product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// CreateProduct handler
// @Summary Create product
// @Description Create a product; name, price and image_url are all required
// @Tags Products
// @Accept json
// @Produce json
// @Param request body model.CreateProductRequest true "Create Product Request"
// @Success 201 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, res)
}

// UpdateProduct handler
// @Summary Update product
// @Description Replace a product's name, price and image_url
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ProductApp.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Description Delete a product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}

	res, err := s.ProductApp.DeleteProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, res)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
