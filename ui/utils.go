package ui

import (
	"html/template"
	"net/http"
	"net/url"

	"churnboard/domain/customer"
	"churnboard/internal/dashboard"
	"churnboard/internal/errors"

	"github.com/gin-gonic/gin"
)

// parseFilter reads start, end and repeated contract parameters.
func parseFilter(c *gin.Context) (customer.Filter, error) {
	f, err := customer.ParseFilter(c.Query("start"), c.Query("end"), c.QueryArray("contract"))
	if err != nil {
		return customer.Filter{}, errors.InvalidInput("invalid filter", err)
	}
	return f, nil
}

// statusFor maps an application error to its HTTP status
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeMissingSource:
		return http.StatusServiceUnavailable
	case errors.CodeSchemaInvalid:
		return http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// filterQuery encodes a filter back into query parameters for links
func filterQuery(f dashboard.FilterView) template.URL {
	v := url.Values{}
	if f.Start != "" {
		v.Set("start", f.Start)
	}
	if f.End != "" {
		v.Set("end", f.End)
	}
	for _, contract := range f.Contracts {
		v.Add("contract", contract)
	}
	return template.URL(v.Encode())
}
