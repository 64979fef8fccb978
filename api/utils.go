package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// writeJSON encodes the payload with the proper content type
func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// getIntParam retrieves an integer query parameter with default value and range validation
func getIntParam(r *http.Request, key string, defaultVal, minVal, maxVal int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil || val < minVal || val > maxVal {
		return defaultVal
	}
	return val
}

// getDecimalParam retrieves a decimal query parameter, nil when absent or unparseable
func getDecimalParam(r *http.Request, key string) *decimal.Decimal {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil
	}

	val, err := decimal.NewFromString(valStr)
	if err != nil {
		return nil
	}
	return &val
}

// respondWithError logs the error and sends a JSON error response
// Use this to avoid exposing internal errors while still logging them
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("API Error [%d]: %s - %v", code, message, err)
	} else {
		log.Printf("API Error [%d]: %s", code, message)
	}
	writeJSON(w, code, map[string]interface{}{"ok": false, "error": message})
}
