// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates request and configuration structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages come from
// the json tag, then the koanf tag, so API clients and operators see the
// names they wrote.
//
// # Custom Tags
//
//	signalname     lowercase slug: tags, genres, cast, production_companies
//	querytemplate  exactly one %s, e.g. "Recommend movies similar to %s"
//
// # Example
//
//	type RecommendRequest struct {
//	    MovieID int `json:"movie_id" validate:"required_without=Title,omitempty,gt=0"`
//	    Limit   int `json:"limit" validate:"omitempty,min=1,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
