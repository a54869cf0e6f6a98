package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"catalog_service/internal/api/middleware"
	"catalog_service/internal/app/service"
	"catalog_service/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(ps *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.listProducts) // GET /api/products (public)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/user/products", h.listOwnedProducts)       // GET /api/user/products
		protected.Post("/products", h.createProduct)               // POST /api/products
		protected.Put("/products/{productID}", h.updateProduct)    // PUT /api/products/{id}
		protected.Delete("/products/{productID}", h.deleteProduct) // DELETE /api/products/{id}
	})
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.productService.ListAll(r.Context(), category)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) listOwnedProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	products, err := h.productService.ListOwned(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.productService.Create(r.Context(), userID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusCreated, "Product added successfully")
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		// An unparseable id cannot match any product.
		common.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req service.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.productService.Update(r.Context(), userID, productID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Product updated successfully")
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	productID, err := parseProductID(r)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.productService.Delete(r.Context(), userID, productID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Product deleted successfully")
}

func parseProductID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
}
