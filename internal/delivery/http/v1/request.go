package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/usecase"
	"zeecrown-admin/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// money formats an amount with two decimals for display.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// readImage returns the uploaded file under field, or nil when none was sent.
func readImage(r *http.Request, field string, maxBytes int64) (*usecase.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid file", domain.ErrValidation)
	}
	defer file.Close()

	if header.Size == 0 {
		return nil, nil
	}
	return readMultipartFile(file, header, maxBytes)
}

func readMultipartFile(file multipart.File, header *multipart.FileHeader, maxBytes int64) (*usecase.ImageUpload, error) {
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d MB", domain.ErrValidation, maxBytes>>20)
	}
	return &usecase.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parseDecimalField(name, value string, required bool) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
		}
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, name)
	}
	return &d, nil
}

func parseBoolField(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	case "off", "false", "0", "no":
		return false
	default:
		return fallback
	}
}

func pageParams(r *http.Request) (page, limit, offset int) {
	q := r.URL.Query()
	return utils.ParsePage(q.Get("page"), q.Get("limit"), defaultPageSize, maxPageSize)
}

var errInvalidForm = fmt.Errorf("%w: file too large or invalid form", domain.ErrValidation)
