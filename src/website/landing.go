package website

import (
	"time"

	"github.com/corkboard/corkboard/src/models"
)

type identityJson struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func identityToJson(identity *models.Identity) *identityJson {
	if identity == nil {
		return nil
	}
	return &identityJson{
		ID:        identity.ID,
		Username:  identity.Username,
		CreatedAt: identity.CreatedAt,
	}
}

func (s *websiteRoutes) Index(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(map[string]any{
		"user": identityToJson(c.CurrentUser),
	})
	return res
}

func (s *websiteRoutes) Main(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(map[string]any{
		"user": identityToJson(c.CurrentUser),
	})
	return res
}
