package common

import (
	"encoding/json"
	"net/http"
)

func SendStructResponse(w http.ResponseWriter, res any) {
	response, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(response)
}

func Ternary[T any](condition bool, a T, b T) T {
	if condition {
		return a
	}
	return b
}
