package website

import (
	"net/http"
	"regexp"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/data"
	"github.com/jackc/pgx/v5/pgxpool"
)

type websiteRoutes struct {
	conn *pgxpool.Pool

	auth  *auth.Service
	notes data.Notes
	pins  data.Pins
}

func NewWebsiteRoutes(conn *pgxpool.Pool) http.Handler {
	users := data.NewUserStore(conn)
	sessions := data.NewSessionStore(conn)

	return newRoutes(&websiteRoutes{
		conn:  conn,
		auth:  auth.NewService(users, sessions),
		notes: data.NewNoteStore(conn),
		pins:  data.NewPinStore(conn),
	})
}

func newRoutes(s *websiteRoutes) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			trackRequestsMiddleware,
			panicCatcherMiddleware,
			logContextErrorsMiddleware,
			s.attachConn,
			identityMiddleware(s.auth.Sessions),
		},
	}

	routes.GET(regexp.MustCompile(`^/$`), s.Index)
	routes.GET(regexp.MustCompile(`^/main$`), needsAuthPage(s.Main))

	routes.POST(regexp.MustCompile(`^/login$`), s.Login)
	routes.POST(regexp.MustCompile(`^/register$`), s.Register)
	routes.POST(regexp.MustCompile(`^/logout$`), s.Logout)

	api := routes.Group(regexp.MustCompile(`^/api`), needsAuth)
	api.GET(regexp.MustCompile(`^/notes$`), s.GetNotes)
	api.POST(regexp.MustCompile(`^/notes$`), s.CreateNote)
	api.GET(regexp.MustCompile(`^/notes/(?P<id>[^/]+)$`), s.GetNote)
	api.POST(regexp.MustCompile(`^/notes/(?P<id>[^/]+)$`), s.UpdateNote)
	api.DELETE(regexp.MustCompile(`^/notes/(?P<id>[^/]+)$`), s.DeleteNote)
	api.GET(regexp.MustCompile(`^/pins$`), s.GetPins)
	api.PUT(regexp.MustCompile(`^/pins$`), s.SavePins)

	routes.AnyMethod(regexp.MustCompile(`^`), FourOhFour)

	return router
}

func (s *websiteRoutes) attachConn(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		c.Conn = s.conn
		return h(c)
	}
}
