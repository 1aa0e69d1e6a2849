package website

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/corkboard/corkboard/src/db"
)

const maxPinsPayloadSize = 1024 * 1024

func (s *websiteRoutes) GetPins(c *RequestContext) ResponseData {
	pins, err := s.pins.Fetch(c, c.CurrentUser.ID)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			// never pinned anything; an empty board
			pins = json.RawMessage("[]")
		} else {
			return c.ErrorResponse(http.StatusInternalServerError, err)
		}
	}

	var res ResponseData
	res.Header().Set("Content-Type", "application/json")
	res.Write(pins)
	return res
}

func (s *websiteRoutes) SavePins(c *RequestContext) ResponseData {
	body, err := io.ReadAll(io.LimitReader(c.Req.Body, maxPinsPayloadSize))
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "failed to read request body"))
	}

	// The pin payload is opaque to the server, but it must at least be a
	// JSON array so GetPins always returns one.
	var pins []json.RawMessage
	if err := json.Unmarshal(body, &pins); err != nil {
		return c.RejectRequest("Pins must be a JSON array")
	}

	board, err := s.pins.Save(c, c.CurrentUser.ID, json.RawMessage(body))
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.WriteJson(map[string]any{
		"updated_at": board.UpdatedAt,
	})
	return res
}
