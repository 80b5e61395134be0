package v1

import (
	"net/http"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/utils"
)

type CustomerHandler struct {
	customerUC customerService
}

func NewCustomerHandler(uc customerService) *CustomerHandler {
	return &CustomerHandler{customerUC: uc}
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)

	customers, total, err := h.customerUC.ListCustomers(r.Context(), limit, offset)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"data":       customers,
		"pagination": domain.NewPagination(page, limit, total),
	})
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	detail, err := h.customerUC.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newCustomerDetailDTO(detail))
}

type updateCustomerReq struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	profile, err := h.customerUC.UpdateCustomer(r.Context(), r.PathValue("id"), req.FullName, req.PhoneNumber)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customerUC.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
