// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lmscatalog/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and parses it as a row identifier.

Returns:
  - int64: The parsed identifier
  - error: VALIDATION_ERROR when the segment is not an integer
*/
func ID(request *http.Request, name string) (int64, error) {
	return validate.ParseID(name, chi.URLParam(request, name))
}

/*
Param retrieves a named URL parameter as free text.

chi matches against the raw path when the URL carried escapes it could not
represent in the decoded form, so the value is unescaped in that case.
*/
func Param(request *http.Request, name string) string {
	value := chi.URLParam(request, name)
	if request.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// Query retrieves a query-string parameter.
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}
