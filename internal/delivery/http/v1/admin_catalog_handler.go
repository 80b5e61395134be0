package v1

import (
	"net/http"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/usecase"
	"zeecrown-admin/pkg/utils"
)

type AdminCatalogHandler struct {
	catalogUC     productService
	maxUploadSize int64
}

func NewAdminCatalogHandler(uc productService, maxUploadSizeMB int64) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc, maxUploadSize: maxUploadSizeMB << 20}
}

type productResponse struct {
	Product *productDTO `json:"product"`
	Warning string      `json:"warning,omitempty"`
}

func (h *AdminCatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)
	filter := domain.ProductFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	}

	products, total, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"data":       newProductDTOs(products),
		"pagination": domain.NewPagination(page, limit, total),
	})
}

func (h *AdminCatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newProductDTO(product))
}

// CreateProduct accepts multipart/form-data with fields name, description,
// price, mrp, category and an optional image file.
func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, image, err := h.parseProductForm(w, r)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	product, err := h.catalogUC.CreateProduct(r.Context(), in, image)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, productResponse{Product: newProductDTO(product)})
}

// UpdateProduct takes the same form as CreateProduct; a new image replaces the old one.
func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	in, image, err := h.parseProductForm(w, r)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	product, warning, err := h.catalogUC.UpdateProduct(r.Context(), r.PathValue("id"), in, image)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, productResponse{Product: newProductDTO(product), Warning: warning})
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	warning, err := h.catalogUC.DeleteProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	resp := map[string]string{"status": "deleted"}
	if warning != "" {
		resp["warning"] = warning
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *AdminCatalogHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (usecase.ProductInput, *usecase.ImageUpload, error) {
	var in usecase.ProductInput

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if isMultipart(r) {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return in, nil, errInvalidForm
		}
	} else if err := r.ParseForm(); err != nil {
		return in, nil, errInvalidForm
	}

	price, err := parseDecimalField("price", r.FormValue("price"), true)
	if err != nil {
		return in, nil, err
	}
	mrp, err := parseDecimalField("mrp", r.FormValue("mrp"), false)
	if err != nil {
		return in, nil, err
	}

	in = usecase.ProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       *price,
		MRP:         mrp,
		Category:    strings.ToLower(strings.TrimSpace(r.FormValue("category"))),
	}

	if !isMultipart(r) {
		return in, nil, nil
	}
	image, err := readImage(r, "image", h.maxUploadSize)
	if err != nil {
		return in, nil, err
	}
	return in, image, nil
}
