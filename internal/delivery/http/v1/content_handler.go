package v1

import (
	"net/http"

	"zeecrown-admin/internal/usecase"
	"zeecrown-admin/pkg/utils"
)

type ContentHandler struct {
	bannerUC      usecase.BannerUsecase
	maxUploadSize int64
}

func NewContentHandler(uc usecase.BannerUsecase, maxUploadSizeMB int64) *ContentHandler {
	return &ContentHandler{bannerUC: uc, maxUploadSize: maxUploadSizeMB << 20}
}

func (h *ContentHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerUC.ListBanners(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, banners)
}

// CreateBanner accepts multipart/form-data with sort_order, is_active and a required image.
func (h *ContentHandler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeUsecaseError(w, r, errInvalidForm)
		return
	}

	image, err := readImage(r, "image", h.maxUploadSize)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	if image == nil {
		image = &usecase.ImageUpload{}
	}

	sortOrder := utils.ParseInt(r.FormValue("sort_order"), 0)
	isActive := parseBoolField(r.FormValue("is_active"), true)

	banner, err := h.bannerUC.CreateBanner(r.Context(), sortOrder, isActive, *image)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, banner)
}

type updateBannerReq struct {
	SortOrder *int  `json:"sortOrder"`
	IsActive  *bool `json:"isActive"`
}

func (h *ContentHandler) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	var req updateBannerReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	banner, err := h.bannerUC.UpdateBanner(r.Context(), r.PathValue("id"), usecase.BannerPatch{
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, banner)
}

func (h *ContentHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	warning, err := h.bannerUC.DeleteBanner(r.Context(), r.PathValue("id"))
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
