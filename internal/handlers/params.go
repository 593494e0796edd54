package handlers

import "net/http"

// getParam returns a path or query parameter value. pat stores path params
// in the query with a leading colon; the plain name and net/http's PathValue
// are checked as fallbacks.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}
