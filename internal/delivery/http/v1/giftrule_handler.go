package v1

import (
	"net/http"
	"strconv"

	"geeta-backend/internal/domain"
	"geeta-backend/internal/usecase"
	"geeta-backend/pkg/utils"
)

// GiftRuleHandler serves the customer-facing read surface: only active
// rules are ever exposed, sorted ascending, so the storefront and admin
// views cannot diverge on visibility.
type GiftRuleHandler struct {
	eligibilityUC *usecase.EligibilityUsecase
}

func NewGiftRuleHandler(uc *usecase.EligibilityUsecase) *GiftRuleHandler {
	return &GiftRuleHandler{eligibilityUC: uc}
}

// GetActiveGiftRules returns the active rules, cheapest tier first.
// GET /api/v1/gift-rules
func (h *GiftRuleHandler) GetActiveGiftRules(w http.ResponseWriter, r *http.Request) {
	rules, stale, err := h.eligibilityUC.ActiveGiftRules(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := domain.Response{Success: true, Data: rules}
	if stale {
		resp.Meta = map[string]bool{"stale": true}
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetGiftEligibility resolves the gift tiers a cart qualifies for.
// GET /api/v1/cart/gift-eligibility?subtotal=60000
//
// subtotal is in paise. It is parsed as a float so that garbage like
// "NaN" is rejected explicitly instead of wrapping around in integer
// parsing.
func (h *GiftRuleHandler) GetGiftEligibility(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("subtotal")
	if raw == "" {
		utils.WriteJSON(w, http.StatusBadRequest, domain.Response{Success: false, Message: "subtotal query parameter is required"})
		return
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, domain.Response{Success: false, Message: "subtotal must be a number"})
		return
	}
	subtotal, err := domain.PaisaFromFloat(f)
	if err != nil {
		writeDomainError(w, &domain.InvalidInputError{Reason: err.Error()})
		return
	}

	res, stale, err := h.eligibilityUC.ResolveCart(r.Context(), subtotal)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := domain.Response{Success: true, Data: res}
	if stale {
		resp.Meta = map[string]bool{"stale": true}
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
