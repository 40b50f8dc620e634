package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mybudget/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	expenseHandler *handler.ExpenseHandler,
	resolver UserResolver,
	db *pgxpool.Pool,
) *Router {
	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/mybudget")
	api.Use(AuthMiddleware(resolver))

	// Public (the middleware lets unauthenticated requests through;
	// these handlers never read the identity)
	api.POST("/login", authHandler.Login)
	api.POST("/user-register", authHandler.Register)

	// Owner-scoped
	exp := api.Group("/expense")
	{
		exp.POST("/register", expenseHandler.Register)
		exp.PUT("/update/:id", expenseHandler.Update)
		exp.GET("/list-all", expenseHandler.ListAll)
		exp.GET("/pending", expenseHandler.ListPending)
		exp.GET("/paid", expenseHandler.ListPaid)
		exp.DELETE("/delete/:id", expenseHandler.Delete)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
