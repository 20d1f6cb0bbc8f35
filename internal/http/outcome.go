package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Action string

const (
	ActionShow    Action = "show"
	ActionEdit    Action = "edit"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
	ActionCreate  Action = "create"
)

// MissingPolicy is what an action answers when its task does not exist:
// a redirect when RedirectTo is set, otherwise 404.
type MissingPolicy struct {
	RedirectTo string
}

// DefaultMissingPolicies keeps show and update forgiving (redirect) while
// edit and destroy report the task as missing.
var DefaultMissingPolicies = map[Action]MissingPolicy{
	ActionShow:    {RedirectTo: "/tasks"},
	ActionEdit:    {},
	ActionUpdate:  {RedirectTo: "/"},
	ActionDestroy: {},
}

func (p MissingPolicy) respond(c echo.Context) error {
	if p.RedirectTo != "" {
		return c.Redirect(http.StatusFound, p.RedirectTo)
	}
	return echo.NewHTTPError(http.StatusNotFound, "task not found")
}

// WriteFailureFunc answers a create or update whose store write failed.
type WriteFailureFunc func(c echo.Context, action Action, err error) error

func defaultWriteFailure(_ echo.Context, _ Action, _ error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "failed to save task")
}

type HandlerOption func(*Handler)

func WithMissingPolicy(action Action, policy MissingPolicy) HandlerOption {
	return func(h *Handler) {
		h.missing[action] = policy
	}
}

func WithWriteFailure(fn WriteFailureFunc) HandlerOption {
	return func(h *Handler) {
		h.writeFailure = fn
	}
}
