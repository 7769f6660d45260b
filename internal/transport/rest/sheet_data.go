package rest

import (
	"fmt"
	"net/http"
)

// SheetData is the placeholder /api/sheet-data endpoint. Only GET is served.
func SheetData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, "Method %s Not Allowed", r.Method) //nolint:errcheck
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello, this is your JSON response!",
	})
}
