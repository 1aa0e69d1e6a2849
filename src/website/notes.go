package website

import (
	"errors"
	"net/http"
	"time"

	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/models"
)

type noteJson struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func noteToJson(note *models.Note) noteJson {
	return noteJson{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		ExpiresAt: note.ExpiresAt,
	}
}

func (s *websiteRoutes) GetNotes(c *RequestContext) ResponseData {
	notes, err := s.notes.ListForUser(c, c.CurrentUser.ID)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	result := []noteJson{}
	for _, note := range notes {
		result = append(result, noteToJson(note))
	}

	var res ResponseData
	res.WriteJson(result)
	return res
}

func (s *websiteRoutes) GetNote(c *RequestContext) ResponseData {
	note, err := s.notes.Fetch(c, c.CurrentUser.ID, c.PathParams["id"])
	if err != nil {
		// A note owned by someone else looks exactly like a missing one.
		if errors.Is(err, db.NotFound) {
			return c.ErrorResponse(http.StatusNotFound, NewSafeError(err, "Note not found"))
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.WriteJson(noteToJson(note))
	return res
}

func (s *websiteRoutes) CreateNote(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	title := form.Get("title")
	content := form.Get("content")
	if title == "" {
		return c.RejectRequest("Title is required")
	}
	if content == "" {
		return c.RejectRequest("Content is required")
	}

	// The owner is always the authenticated caller, never client input.
	note, err := s.notes.Create(c, c.CurrentUser.ID, title, content)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	res := ResponseData{StatusCode: http.StatusCreated}
	res.WriteJson(noteToJson(note))
	return res
}

func (s *websiteRoutes) UpdateNote(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return c.ErrorResponse(http.StatusBadRequest, NewSafeError(err, "request must contain form data"))
	}

	title := form.Get("title")
	content := form.Get("content")
	if title == "" {
		return c.RejectRequest("Title is required")
	}
	if content == "" {
		return c.RejectRequest("Content is required")
	}

	note, err := s.notes.Update(c, c.CurrentUser.ID, c.PathParams["id"], title, content)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return c.ErrorResponse(http.StatusNotFound, NewSafeError(err, "Note not found"))
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.WriteJson(noteToJson(note))
	return res
}

func (s *websiteRoutes) DeleteNote(c *RequestContext) ResponseData {
	err := s.notes.Delete(c, c.CurrentUser.ID, c.PathParams["id"])
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return c.ErrorResponse(http.StatusNotFound, NewSafeError(err, "Note not found"))
		}
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}

	var res ResponseData
	res.WriteJson(map[string]bool{"deleted": true})
	return res
}
