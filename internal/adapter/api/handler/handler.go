package handler

import (
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/config"
)

var (
	productHandler  *ProductHandler
	adminHandler    *AdminHandler
	authHandler     *AuthHandler
	checkoutHandler *CheckoutHandler
	siteHandler     *SiteHandler
	healthHandler   *HealthHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	authUseCase *usecase.AuthUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	site config.Site,
) {
	productHandler = NewProductHandler(catalogUseCase)
	adminHandler = NewAdminHandler(catalogUseCase)
	authHandler = NewAuthHandler(authUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase)
	siteHandler = NewSiteHandler(site)
	healthHandler = NewHealthHandler(catalogUseCase)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetCheckoutHandler() *CheckoutHandler {
	return checkoutHandler
}

func GetSiteHandler() *SiteHandler {
	return siteHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
