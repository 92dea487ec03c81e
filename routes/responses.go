package routes

import (
	"log"
	"net/http"

	"feedback-server/common"

	"github.com/getsentry/sentry-go"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ValidationResponse struct {
	Response
	Errors map[string]string `json:"errors"`
}

func Error(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	common.SendStructResponse(w, Response{
		Success: false,
		Message: message,
	})
}

func ValidationError(w http.ResponseWriter, errors map[string]string) {
	w.WriteHeader(http.StatusBadRequest)
	common.SendStructResponse(w, ValidationResponse{
		Response: Response{
			Success: false,
			Message: "Invalid feedback data",
		},
		Errors: errors,
	})
}

// ServerError hides the failure detail from the client; it only gets
// logged and, when configured, reported to Sentry.
func ServerError(w http.ResponseWriter, err error) {
	log.Println("internal error:", err)
	if common.Config != nil && common.Config.SentryDSN != "" {
		sentry.CaptureException(err)
	}
	Error(w, http.StatusInternalServerError, "Internal server error")
}
