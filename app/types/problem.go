package types

const problemTypePrefix = "urn:paymentapp:problem:"

const (
	ProblemValidation          = problemTypePrefix + "validation-error"
	ProblemConstraintViolation = problemTypePrefix + "constraint-violation"
	ProblemNotFound            = problemTypePrefix + "resource-not-found"
	ProblemMalformedJSON       = problemTypePrefix + "malformed-json"
	ProblemConflict            = problemTypePrefix + "resource-conflict"
	ProblemInternal            = problemTypePrefix + "internal-error"
)

const MIMEApplicationProblemJSON = "application/problem+json"

// Problem is an RFC 7807 problem details body.
type Problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors,omitempty"`
}
