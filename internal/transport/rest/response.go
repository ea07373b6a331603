package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type APIResponse struct {
	ErrorCode int         `json:"error_code"`
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}

func Response(w http.ResponseWriter, r *http.Request, message string, data interface{}, errorCode int, status string, httpStatus int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	response := APIResponse{
		ErrorCode: errorCode,
		Status:    status,
		Message:   message,
		Data:      data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write response")
	}
}

func Success(w http.ResponseWriter, r *http.Request, message string, data interface{}) {
	Response(w, r, message, data, 0, "success", http.StatusOK)
}

func Error(w http.ResponseWriter, r *http.Request, message string, data interface{}, httpStatus int) {
	Response(w, r, message, data, httpStatus, "error", httpStatus)
}
