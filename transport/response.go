package transport

import (
	"encoding/json"
	"net/http"

	"product-store/constant"
	"product-store/model"
	"product-store/utils/errors"
)

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.SuccessResponse{Success: true, Data: data})
}

// writeError maps a CustomError onto the envelope. Anything else collapses
// to the generic 500 so internal detail never reaches the caller.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := constant.ErrorTypeMessage[constant.ErrInternal]

	if ce, ok := err.(errors.CustomError); ok {
		status = ce.ErrorHTTPCode()
		message = ce.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Success: false, Message: message})
}

// writeDenial is the protective gate's response shape
func writeDenial(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.GateDenial{Error: message})
}
