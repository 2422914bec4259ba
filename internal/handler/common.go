package handler // handler defines the HTTP handlers of the public site and the admin area

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flavor-house/internal/docstore"
	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/repository"
	"github.com/iliyamo/flavor-house/internal/validation"
)

// requestTimeout bounds every store call made on behalf of a request.
const requestTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// writeError maps store and validation failures to responses:
// field errors are 422, a missing record is 404, a failed read is 503 and
// anything else is 500 with the given message.
func writeError(c echo.Context, err error, msg string) error {
	var verrs validation.Errors
	var fe *repository.FetchError
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "fields": verrs})
	case errors.Is(err, docstore.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.As(err, &fe):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}

// listResponse is the envelope of every list endpoint. Error carries the
// slice's last failure so clients can warn that the list may be stale.
type listResponse[T any] struct {
	Items     []T    `json:"items"`
	Count     int    `json:"count"`
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
}

// priceValue accepts a price as a JSON number or as a localized string
// such as "150.000" or "150,000 ₫".
type priceValue struct {
	set   bool
	value int64
}

func (p *priceValue) UnmarshalJSON(b []byte) error {
	p.set = true
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := model.ParsePrice(str)
		if err != nil {
			return err
		}
		p.value = v
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return model.ErrInvalidPrice
	}
	p.value = v
	return nil
}

// looseString accepts a JSON string or number and keeps its text, so a
// form can send guests as either "4" or 4.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	t := strings.TrimSpace(string(b))
	if t == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(t, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	*s = looseString(t)
	return nil
}
