package handlers

import (
	"net/http"

	"github.com/volunteernetwork/api/internal/database"
	"github.com/volunteernetwork/api/internal/models"
	"github.com/volunteernetwork/api/internal/pagination"
)

// OpportunityHandler handles the public opportunity listing
type OpportunityHandler struct {
	opportunityRepo database.OpportunityRepositoryInterface
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityRepo database.OpportunityRepositoryInterface) *OpportunityHandler {
	return &OpportunityHandler{opportunityRepo: opportunityRepo}
}

// ListOpportunitiesResponse is the paginated listing body. Count is the
// estimated total across the whole collection, not the length of Data.
type ListOpportunitiesResponse struct {
	Count int64                 `json:"count"`
	Data  []*models.Opportunity `json:"data"`
}

// ListOpportunities serves one window of the opportunity collection.
// Malformed page or size values are rejected outright rather than coerced.
func (h *OpportunityHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	window, err := pagination.ParseQuery(
		r.URL.Query().Get("page"),
		r.URL.Query().Get("size"),
	)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	opportunities, count, err := h.opportunityRepo.ListPaginated(r.Context(), window)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve opportunities")
		return
	}

	respondRaw(w, http.StatusOK, ListOpportunitiesResponse{
		Count: count,
		Data:  opportunities,
	})
}
