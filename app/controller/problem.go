package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/types"
)

func writeProblem(ctx echo.Context, problem *types.Problem) error {
	ctx.Response().Header().Set(echo.HeaderContentType, types.MIMEApplicationProblemJSON)
	return ctx.JSON(problem.Status, problem)
}

func writeValidationProblem(ctx echo.Context, err error) error {
	problem := &types.Problem{
		Type:   types.ProblemValidation,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: "Validation failed for request body",
	}
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		problem.Errors = verr.Fields
	}
	return writeProblem(ctx, problem)
}

// writeConstraintProblem reports invalid path or query parameters.
func writeConstraintProblem(ctx echo.Context, err error) error {
	problem := &types.Problem{
		Type:   types.ProblemConstraintViolation,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: "Constraint violations in request parameters",
	}
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		problem.Errors = verr.Fields
	}
	return writeProblem(ctx, problem)
}

func writeMalformedJSONProblem(ctx echo.Context) error {
	return writeProblem(ctx, &types.Problem{
		Type:   types.ProblemMalformedJSON,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: "Malformed JSON request",
	})
}

func writeNotFoundProblem(ctx echo.Context, detail string) error {
	return writeProblem(ctx, &types.Problem{
		Type:   types.ProblemNotFound,
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
	})
}

func writeConflictProblem(ctx echo.Context, detail string) error {
	return writeProblem(ctx, &types.Problem{
		Type:   types.ProblemConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
	})
}

func writeInternalProblem(ctx echo.Context) error {
	return writeProblem(ctx, &types.Problem{
		Type:   types.ProblemInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: "Unexpected error",
	})
}
