package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/service"
)

// ContentHandler serves image assets, text blocks and banners.
type ContentHandler struct {
    content *service.Content
}

func NewContentHandler(content *service.Content) *ContentHandler {
    if content == nil {
        panic("nil content service passed to NewContentHandler")
    }
    return &ContentHandler{content: content}
}

// ListImages filters by category and by tags (comma-separated, any match).
func (h *ContentHandler) ListImages(c echo.Context) error {
    imgs, err := h.content.ListImages(c.Request().Context(), c.QueryParam("category"), queryList(c, "tags"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, imgs)
}

func (h *ContentHandler) CreateImage(c echo.Context) error {
    var req service.ImageRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    img, err := h.content.CreateImage(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, img)
}

func (h *ContentHandler) ReplaceImage(c echo.Context) error {
    var req service.ImageRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    img, err := h.content.ReplaceImage(c.Request().Context(), c.Param("id"), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, img)
}

func (h *ContentHandler) DeleteImage(c echo.Context) error {
    if err := h.content.DeleteImage(c.Request().Context(), c.Param("id")); err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}

func (h *ContentHandler) ListBlocks(c echo.Context) error {
    blocks, err := h.content.ListBlocks(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, blocks)
}

func (h *ContentHandler) GetBlock(c echo.Context) error {
    b, err := h.content.GetBlock(c.Request().Context(), c.Param("key"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

func (h *ContentHandler) PutBlock(c echo.Context) error {
    var req service.ContentRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    b, err := h.content.PutBlock(c.Request().Context(), c.Param("key"), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
    activeOnly, err := queryBool(c, "active_only", false)
    if err != nil {
        return respond(c, err)
    }
    banners, err := h.content.ListBanners(c.Request().Context(), activeOnly)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, banners)
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
    var req service.BannerRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    b, err := h.content.CreateBanner(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
    if err := h.content.DeleteBanner(c.Request().Context(), c.Param("id")); err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Banner deleted successfully"})
}
