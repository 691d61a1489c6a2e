package server

import (
	"encoding/json"
	"net/http"
)

// Problem types served by the terroir API (RFC 7807).
const (
	problemBase = "https://terroir.dev/problems/"

	ProblemTypeNotFound     = problemBase + "not-found"
	ProblemTypeBadRequest   = problemBase + "bad-request"
	ProblemTypeInvalidInput = problemBase + "invalid-terroir-input"
	ProblemTypeInternal     = problemBase + "internal-error"
	ProblemTypeRateLimited  = problemBase + "rate-limited"
)

// InvalidParam names one rejected terroir parameter and why.
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Problem represents an RFC 7807 Problem Details response. InvalidParams is
// the RFC's extension member for per-field validation failures.
type Problem struct {
	Type          string         `json:"type"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail,omitempty"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalid_params,omitempty"`
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(problemType string, status int, detail, instance string) Problem {
	return Problem{
		Type:     problemType,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// NotFound writes a 404 for an unknown region or grape id.
func NotFound(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, newProblem(ProblemTypeNotFound, http.StatusNotFound, detail, instance))
}

// BadRequest writes a 400 for a malformed request, such as an unreadable
// body or an unknown grape color filter.
func BadRequest(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, newProblem(ProblemTypeBadRequest, http.StatusBadRequest, detail, instance))
}

// InvalidInput writes a 400 for a well-formed terroir query whose values
// cannot be scored. params lists the offending fields.
func InvalidInput(w http.ResponseWriter, detail, instance string, params ...InvalidParam) {
	p := newProblem(ProblemTypeInvalidInput, http.StatusBadRequest, detail, instance)
	p.InvalidParams = params
	WriteProblem(w, p)
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, newProblem(ProblemTypeInternal, http.StatusInternalServerError, detail, instance))
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, detail, instance string) {
	WriteProblem(w, newProblem(ProblemTypeRateLimited, http.StatusTooManyRequests, detail, instance))
}
