package v1

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/usecase"
	"zeecrown-admin/pkg/utils"

	"github.com/shopspring/decimal"
)

// AdminConfigHandler manages store-wide settings. Today that is the shipping rule table.
type AdminConfigHandler struct {
	shippingUC shippingService
}

func NewAdminConfigHandler(uc shippingService) *AdminConfigHandler {
	return &AdminConfigHandler{shippingUC: uc}
}

type ruleResponse struct {
	ID            string `json:"id"`
	MinOrderValue string `json:"minOrderValue"`
	Charge        string `json:"charge"`
	IsActive      bool   `json:"isActive"`
}

func newRuleResponses(rules []domain.ShippingRule) []ruleResponse {
	out := make([]ruleResponse, len(rules))
	for i, r := range rules {
		out[i] = ruleResponse{
			ID:            r.ID,
			MinOrderValue: money(r.MinOrderValue),
			Charge:        money(r.Charge),
			IsActive:      r.IsActive,
		}
	}
	return out
}

// GET /admin/shipping-rules
func (h *AdminConfigHandler) GetShippingRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.shippingUC.ListRules(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"rules": newRuleResponses(rules)})
}

type updateRulesReq struct {
	Rules []usecase.RuleUpdate `json:"rules"`
}

// PUT /admin/shipping-rules
// Accepts {"rules":[...]} or the indexed form fields posted by older dashboards.
func (h *AdminConfigHandler) UpdateShippingRules(w http.ResponseWriter, r *http.Request) {
	var updates []usecase.RuleUpdate

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid form")
			return
		}
		parsed, err := parseIndexedRuleForm(r.PostForm)
		if err != nil {
			writeUsecaseError(w, r, err)
			return
		}
		updates = parsed
	} else {
		var req updateRulesReq
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		updates = req.Rules
	}

	rules, err := h.shippingUC.UpdateRules(r.Context(), updates)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"rules": newRuleResponses(rules)})
}

type shippingQuoteReq struct {
	Subtotal decimal.Decimal `json:"subtotal"`
}

// POST /admin/shipping-rules/quote
func (h *AdminConfigHandler) QuoteShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingQuoteReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.shippingUC.QuoteShipping(r.Context(), req.Subtotal)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	resp := map[string]any{
		"subtotal": money(req.Subtotal),
		"charge":   money(res.Charge),
		"failOpen": res.FailOpen,
	}
	if res.Rule != nil {
		resp["ruleId"] = res.Rule.ID
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// parseIndexedRuleForm converts id_N, min_order_value_N, charge_N and is_active_N
// fields into an ordered batch. Rows are ordered by N. When the form carries no
// is_active_* field at all every row is active; otherwise an absent checkbox means
// inactive.
func parseIndexedRuleForm(form url.Values) ([]usecase.RuleUpdate, error) {
	indexes := make(map[int]struct{})
	hasActiveField := false
	for key := range form {
		i := strings.LastIndexByte(key, '_')
		if i < 0 {
			continue
		}
		field, suffix := key[:i], key[i+1:]
		switch field {
		case "id", "min_order_value", "charge", "is_active":
		default:
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		indexes[n] = struct{}{}
		if field == "is_active" {
			hasActiveField = true
		}
	}

	if len(indexes) == 0 {
		return nil, fmt.Errorf("%w: no shipping rules submitted", domain.ErrValidation)
	}

	order := make([]int, 0, len(indexes))
	for n := range indexes {
		order = append(order, n)
	}
	sort.Ints(order)

	updates := make([]usecase.RuleUpdate, 0, len(order))
	for _, n := range order {
		suffix := "_" + strconv.Itoa(n)

		minValue, err := parseDecimalField("min_order_value"+suffix, form.Get("min_order_value"+suffix), true)
		if err != nil {
			return nil, err
		}
		charge, err := parseDecimalField("charge"+suffix, form.Get("charge"+suffix), true)
		if err != nil {
			return nil, err
		}

		active := true
		if hasActiveField {
			active = parseBoolField(form.Get("is_active"+suffix), false)
		}

		updates = append(updates, usecase.RuleUpdate{
			ID:            strings.TrimSpace(form.Get("id" + suffix)),
			MinOrderValue: *minValue,
			Charge:        *charge,
			IsActive:      active,
		})
	}
	return updates, nil
}
