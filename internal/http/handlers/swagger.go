package handlers

import (
	_ "github.com/geocoder89/eventrest/internal/docs"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SwaggerUI serves the registered swagger document and its UI. Deep linking
// is on so profile links can target a single operation.
func SwaggerUI() gin.HandlerFunc {
	return ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DeepLinking(true),
		ginSwagger.DocExpansion("list"),
	)
}
