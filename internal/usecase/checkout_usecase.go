package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/pkg/config"
	"oumybeauty/pkg/errors"
)

type CatalogReader interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
}

// CheckoutUseCase turns a cart into a pre-filled WhatsApp order message.
// Prices come from the catalog, never from the client.
type CheckoutUseCase struct {
	catalog CatalogReader
	site    config.Site
	printer *message.Printer
}

func NewCheckoutUseCase(catalog CatalogReader, site config.Site) *CheckoutUseCase {
	tag, err := language.Parse(site.Locale)
	if err != nil {
		tag = language.French
	}
	return &CheckoutUseCase{
		catalog: catalog,
		site:    site,
		printer: message.NewPrinter(tag),
	}
}

func (uc *CheckoutUseCase) Compose(ctx context.Context, order *entity.Order) (*entity.CheckoutLink, error) {
	if ok, reasons := order.Validate(); !ok {
		return nil, errors.Validation(reasons...)
	}

	products, err := uc.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	link := &entity.CheckoutLink{}
	for _, item := range order.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, errors.NotFound(fmt.Sprintf("Product %s", item.ProductID), nil)
		}
		subtotal := product.Price * float64(item.Qty)
		link.Lines = append(link.Lines, entity.OrderLine{Product: product, Qty: item.Qty, Subtotal: subtotal})
		link.Total += subtotal
	}

	link.Message = uc.message(order, link)
	link.URL = uc.deepLink(link.Message)
	return link, nil
}

func (uc *CheckoutUseCase) message(order *entity.Order, link *entity.CheckoutLink) string {
	address := strings.TrimSpace(order.Address)
	if address == "" {
		address = uc.site.Address.String()
	}

	lines := []string{uc.site.MessagePrefix, ""}
	for _, l := range link.Lines {
		lines = append(lines, fmt.Sprintf("• %s x%d — %s", l.Product.Name, l.Qty, uc.Currency(l.Subtotal)))
	}
	lines = append(lines,
		"",
		"Total: "+uc.Currency(link.Total),
		"",
		"Nom: "+order.FullName,
		"Téléphone: "+order.Phone,
		"Adresse: "+address,
		"Mode de paiement: Paiement à la livraison",
	)
	return strings.Join(lines, "\n")
}

// Currency formats an amount with the shop locale's separators.
func (uc *CheckoutUseCase) Currency(amount float64) string {
	return uc.printer.Sprintf("%.2f %s", amount, uc.site.CurrencySymbol)
}

func (uc *CheckoutUseCase) deepLink(text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, uc.site.PhoneE164)

	// wa.me expects %20 rather than + for spaces
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + escaped
}
