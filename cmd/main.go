package main

import (
	"github.com/gin-gonic/gin"

	"github.com/irabtech/lms/internal/app"
	"github.com/irabtech/lms/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
