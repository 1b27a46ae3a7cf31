package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devcatalog/projects-api/config"
	httpapi "github.com/devcatalog/projects-api/internal/api/http"
	"github.com/devcatalog/projects-api/internal/api/http/middleware"
	projectshttp "github.com/devcatalog/projects-api/internal/projects/http"
	projectsrepo "github.com/devcatalog/projects-api/internal/projects/repository"
	"github.com/devcatalog/projects-api/internal/ratelimit"
	techhttp "github.com/devcatalog/projects-api/internal/technologies/http"
	techrepo "github.com/devcatalog/projects-api/internal/technologies/repository"
	usershttp "github.com/devcatalog/projects-api/internal/users/http"
	usersrepo "github.com/devcatalog/projects-api/internal/users/repository"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	CORS        config.CORSConfig
	Limiter     ratelimit.Limiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if dep.Limiter != nil {
		r.Use(ratelimit.Middleware(dep.Limiter))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)
	httpapi.RegisterDocs(r)

	projectshttp.NewHandler(projectsrepo.New(dep.DB)).Register(r.Group("/projects"))
	techhttp.NewHandler(techrepo.New(dep.DB)).Register(r.Group("/technologies"))
	usershttp.NewHandler(usersrepo.New(dep.DB)).Register(r.Group("/users"))

	return r
}
