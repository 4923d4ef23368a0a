package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/go-playground/validator/v10"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch hotel.KindOf(err) {
	case hotel.KindNotFound:
		code = http.StatusNotFound
	case hotel.KindConflict:
		code = http.StatusConflict
	case hotel.KindInvalidRequest:
		code = http.StatusBadRequest
	case hotel.KindForbidden:
		code = http.StatusForbidden
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func decodeJSON[T any](r *http.Request, validate *validator.Validate) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, hotel.InvalidRequest("invalid json")
	}
	if err := validate.Struct(req); err != nil {
		return req, hotel.InvalidRequest("%s", err)
	}
	return req, nil
}
