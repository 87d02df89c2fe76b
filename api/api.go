package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/database"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	store         database.Storage
}

func NewAPIServer(listenAddress string, store database.Storage) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:   "willowgate-school-api",
			BodyLimit: 12 << 20,
		}),
		listenAddress: listenAddress,
		store:         store,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Printf("Starting API server, listening on %s", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}
