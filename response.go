package auth

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ResultResponse is the single envelope every endpoint answers with. The
// original system grew several competing failure shapes; everything here is
// normalized to this one.
type ResultResponse struct {
	Result  bool           `json:"result"`
	Message string         `json:"message"`
	Error   *ErrorBody     `json:"error"`
	Data    map[string]any `json:"data,omitempty"`
}

// ErrorBody carries the machine-readable failure code. Details stay
// deliberately generic for credential and session failures.
type ErrorBody struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// JSONSuccess writes the success envelope.
func JSONSuccess(c router.Context, message string, data map[string]any) error {
	return c.JSON(router.StatusOK, ResultResponse{
		Result:  true,
		Message: message,
		Data:    data,
	})
}

// JSONError writes the failure envelope with a status derived from the
// error's category.
func JSONError(c router.Context, err error) error {
	richErr := asRichError(err)

	return c.JSON(statusForError(richErr), ResultResponse{
		Result:  false,
		Message: richErr.Message,
		Error: &ErrorBody{
			Code:    richErr.TextCode,
			Details: richErr.Message,
		},
	})
}

func asRichError(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithTextCode("INTERNAL_ERROR").
			WithCode(goerrors.CodeInternal)
	}
	return richErr
}

func statusForError(richErr *goerrors.Error) int {
	switch richErr.Category {
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return router.StatusForbidden
	case goerrors.CategoryConflict:
		return router.StatusConflict
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	default:
		return router.StatusInternalServerError
	}
}
