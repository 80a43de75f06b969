package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/volunteernetwork/api/internal/token"
	"go.uber.org/zap"
)

// TokenHandler handles token issuance requests
type TokenHandler struct {
	issuer *token.Issuer
	logger *zap.Logger
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(issuer *token.Issuer, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{issuer: issuer, logger: logger}
}

// TokenResponse is the body returned by a successful token issuance
type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken signs the request body as an identity claim set. The claim
// content is caller-supplied and unvalidated; the exchange is protected by
// rate limiting, not by identity verification.
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&claims); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Request body must be a JSON object")
		return
	}
	if claims == nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Request body must be a JSON object")
		return
	}

	signed, err := h.issuer.Issue(claims)
	if err != nil {
		h.logger.Error("token_issuance_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}

	respondRaw(w, http.StatusOK, TokenResponse{Token: signed})
}
