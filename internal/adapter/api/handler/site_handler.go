package handler

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/pkg/config"
	"oumybeauty/pkg/response"
)

type SiteHandler struct {
	site config.Site
}

func NewSiteHandler(site config.Site) *SiteHandler {
	return &SiteHandler{site: site}
}

func (h *SiteHandler) GetSite(c echo.Context) error {
	return response.Success(c, h.site)
}
