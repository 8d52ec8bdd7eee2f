package http

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

// pathOrderRef resolves {ref}, which is either an order UUID or its short code.
func pathOrderRef(c echo.Context) (kernel.UUID, error) {
	var ref string
	err := runtime.BindStyledParameterWithOptions("simple", "ref", c.Param("ref"), &ref, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("ref", err)
	}
	return kernel.ParseOrderRef(ref)
}

func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *uuid.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryString(c echo.Context, name string) (*string, error) {
	var s *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &s); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return s, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	var n *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &n); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if n == nil {
		return 0, nil
	}
	return *n, nil
}

func bindBody(c echo.Context, dest any) error {
	if err := c.Bind(dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
