package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"pt.arrendado.flatfinder/internal/auth"
	"pt.arrendado.flatfinder/internal/model"
)

type MessageService interface {
	Send(flatID model.FlatID, senderID model.UserID, content string) (*model.Message, error)
	Page(flatID model.FlatID, page, pageSize int) ([]model.ConversationMessage, error)
	Conversation(callerID model.UserID, flatID model.FlatID) ([]model.ConversationMessage, error)
	MarkAllRead(flatID model.FlatID) (int64, error)
	SentBy(senderID model.UserID) ([]model.SentMessage, error)
}

type postMessageParams struct {
	Content string `json:"content" validate:"required"`
}

// ListMessages serves the public paginated message feed of a flat, newest
// first.
func ListMessages(svc MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		flatID := model.FlatID(c.Param("id"))
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		messages, err := svc.Page(flatID, page, limit)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, messages)
	}
}

// PostMessage appends a message to a flat's conversation on behalf of the
// authenticated caller.
func PostMessage(svc MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		params := &postMessageParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		if err := c.Validate(params); err != nil {
			return err
		}

		message, err := svc.Send(model.FlatID(c.Param("id")), identity.UserID, params.Content)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, message)
	}
}

// MarkMessagesRead flips every message of a flat to read.
func MarkMessagesRead(svc MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		updated, err := svc.MarkAllRead(model.FlatID(c.Param("id")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
	}
}

// Conversation serves a flat's full conversation to its owner or to a prior
// sender.
func Conversation(svc MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		messages, err := svc.Conversation(identity.UserID, model.FlatID(c.Param("id")))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, messages)
	}
}

// UserMessages serves every message the caller has sent, newest first, each
// with its flat.
func UserMessages(svc MessageService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, model.ErrorMissingCredential.Error())
		}

		messages, err := svc.SentBy(identity.UserID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, messages)
	}
}
