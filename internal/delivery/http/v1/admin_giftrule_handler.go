package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"geeta-backend/internal/domain"
	"geeta-backend/internal/usecase"
	"geeta-backend/pkg/utils"
)

// AdminGiftRuleHandler handles admin gift-rule management endpoints.
// Thin handler layer - delegates all logic to usecase.
type AdminGiftRuleHandler struct {
	giftRuleUC *usecase.GiftRuleUsecase
}

func NewAdminGiftRuleHandler(uc *usecase.GiftRuleUsecase) *AdminGiftRuleHandler {
	return &AdminGiftRuleHandler{giftRuleUC: uc}
}

// ListGiftRules returns a paginated list of rules of any status.
// GET /api/v1/admin/gift-rules?page=1&limit=20&status=active
func (h *AdminGiftRuleHandler) ListGiftRules(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 20)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	status := r.URL.Query().Get("status")

	rules, total, err := h.giftRuleUC.ListGiftRules(r.Context(), status, limit, (page-1)*limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    rules,
		Meta: domain.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: totalPages,
		},
	})
}

// GetGiftRule returns a single rule by ID.
// GET /api/v1/admin/gift-rules/{id}
func (h *AdminGiftRuleHandler) GetGiftRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.giftRuleUC.GetGiftRule(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: rule})
}

// CreateGiftRule creates a new rule.
// POST /api/v1/admin/gift-rules
func (h *AdminGiftRuleHandler) CreateGiftRule(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateGiftRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, domain.Response{Success: false, Message: "invalid JSON body"})
		return
	}

	rule, err := h.giftRuleUC.CreateGiftRule(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, domain.Response{Success: true, Data: rule})
}

// UpdateGiftRule applies a partial update to an existing rule.
// PUT /api/v1/admin/gift-rules/{id}
func (h *AdminGiftRuleHandler) UpdateGiftRule(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateGiftRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, domain.Response{Success: false, Message: "invalid JSON body"})
		return
	}

	rule, err := h.giftRuleUC.UpdateGiftRule(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, domain.Response{Success: true, Data: rule})
}

// DeleteGiftRule deletes a rule by ID. A repeated delete returns 404.
// DELETE /api/v1/admin/gift-rules/{id}
func (h *AdminGiftRuleHandler) DeleteGiftRule(w http.ResponseWriter, r *http.Request) {
	if err := h.giftRuleUC.DeleteGiftRule(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
