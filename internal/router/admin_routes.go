package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storage-booking/internal/handler"
)

// RegisterAdmin registers the back-office endpoints: images, CMS content,
// sample data and integration credentials.
func RegisterAdmin(g *echo.Group, u *handler.UnitHandler, c *handler.ContentHandler, i *handler.IntegrationHandler) {
	g.GET("/images", c.ListImages)
	g.POST("/images", c.CreateImage)
	g.PUT("/images/:id", c.ReplaceImage)
	g.DELETE("/images/:id", c.DeleteImage)

	g.GET("/content", c.ListBlocks)
	g.GET("/content/:key", c.GetBlock)
	g.PUT("/content/:key", c.PutBlock)
	g.GET("/banners", c.ListBanners)
	g.POST("/banners", c.CreateBanner)
	g.DELETE("/banners/:id", c.DeleteBanner)

	g.POST("/initialize-sample-data", u.InitializeSampleData)

	g.GET("/api-keys", i.ListKeys)
	g.POST("/api-keys", i.SaveKey)
	g.DELETE("/api-keys/:id", i.DeleteKey)
	g.GET("/integration-status", i.Status)
	g.POST("/integrations/reload", i.Reload)
}
