// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/evaluation"
)

// EvaluateRequest scores a ranked list against a caller-supplied relevance
// set. K defaults to the configured cutoff.
type EvaluateRequest struct {
	Recommended []int `json:"recommended" validate:"max=10000"`
	Relevant    []int `json:"relevant" validate:"max=10000"`
	K           int   `json:"k" validate:"min=0,max=1000"`
}

// Evaluate handles POST /api/v1/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req EvaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	k := req.K
	if k == 0 {
		k = h.engine.Config().K
	}

	res, err := evaluation.Evaluate(req.Recommended, evaluation.NewSet(req.Relevant...), k)
	if err != nil {
		if errors.Is(err, evaluation.ErrInvalidK) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Evaluation failed", err)
		return
	}

	respondData(w, res, start)
}
