package v1

import (
	"net/http"

	"zeecrown-admin/pkg/utils"
)

type UploadHandler struct {
	mediaUC       mediaService
	maxUploadSize int64
	buckets       map[string]string
	defaultBucket string
}

// NewUploadHandler serves generic image ingest. The optional "bucket" form field
// picks "product" or "banner"; anything else is rejected.
func NewUploadHandler(uc mediaService, maxUploadSizeMB int64, productBucket, bannerBucket string) *UploadHandler {
	return &UploadHandler{
		mediaUC:       uc,
		maxUploadSize: maxUploadSizeMB << 20,
		buckets: map[string]string{
			"product": productBucket,
			"banner":  bannerBucket,
		},
		defaultBucket: productBucket,
	}
}

// POST /admin/uploads
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	bucket := h.defaultBucket
	if name := r.FormValue("bucket"); name != "" {
		b, ok := h.buckets[name]
		if !ok {
			utils.WriteError(w, http.StatusBadRequest, "Unknown bucket")
			return
		}
		bucket = b
	}

	img, err := readImage(r, "file", h.maxUploadSize)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	if img == nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	stored, err := h.mediaUC.Ingest(r.Context(), bucket, *img)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, stored)
}
