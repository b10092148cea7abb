package entity

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PlaceholderImageURL is rendered for products without a usable image.
const PlaceholderImageURL = "https://via.placeholder.com/400x400/f3f4f6/9ca3af?text=Produit"

var ErrMalformedDataURI = errors.New("malformed data uri")

type ImageKind int

const (
	ImagePlaceholder ImageKind = iota
	ImageInline
	ImageRemote
	ImageStatic
	// ImageEphemeral is a process-local object reference (blob:) that cannot
	// be resolved once the process that created it is gone.
	ImageEphemeral
)

func (k ImageKind) String() string {
	switch k {
	case ImagePlaceholder:
		return "placeholder"
	case ImageInline:
		return "inline"
	case ImageRemote:
		return "remote"
	case ImageStatic:
		return "static"
	case ImageEphemeral:
		return "ephemeral"
	}
	return "unknown"
}

// Image is the decoded form of Product.Image. Only URI() crosses the
// storage boundary.
type Image struct {
	Kind ImageKind
	URL  string
	MIME string
	Data []byte
}

func InlineImage(mime string, data []byte) Image {
	return Image{Kind: ImageInline, MIME: mime, Data: data}
}

func RemoteImage(url string) Image {
	return Image{Kind: ImageRemote, URL: url}
}

func ParseImage(uri string) (Image, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "" || uri == PlaceholderImageURL:
		return Image{Kind: ImagePlaceholder}, nil
	case strings.HasPrefix(uri, "data:"):
		return parseDataURI(uri)
	case strings.HasPrefix(uri, "blob:"):
		return Image{Kind: ImageEphemeral, URL: uri}, nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return Image{Kind: ImageRemote, URL: uri}, nil
	default:
		return Image{Kind: ImageStatic, URL: uri}, nil
	}
}

func parseDataURI(uri string) (Image, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return Image{}, ErrMalformedDataURI
	}
	mime, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" || mime == "" {
		return Image{}, ErrMalformedDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return Image{}, ErrMalformedDataURI
	}
	return InlineImage(mime, data), nil
}

func (i Image) URI() string {
	switch i.Kind {
	case ImagePlaceholder:
		return PlaceholderImageURL
	case ImageInline:
		return "data:" + i.MIME + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
	default:
		return i.URL
	}
}

// Durable reports whether the image can still be resolved after the
// process that produced it has exited.
func (i Image) Durable() bool {
	return i.Kind != ImageEphemeral
}

// legacyBrokenPaths are asset paths from earlier storefront builds that no
// longer resolve.
var legacyBrokenPaths = []string{"/src/assets/"}

// NeedsRepair reports whether uri cannot be rendered as-is.
func NeedsRepair(uri string) bool {
	if strings.TrimSpace(uri) == "" {
		return true
	}
	for _, p := range legacyBrokenPaths {
		if strings.Contains(uri, p) {
			return true
		}
	}
	img, err := ParseImage(uri)
	return err != nil || !img.Durable()
}

// RepairImages rewrites unrenderable images to the placeholder. UpdatedAt is
// left alone. It reports how many records changed.
func RepairImages(products []*Product) int {
	fixed := 0
	for _, p := range products {
		if NeedsRepair(p.Image) {
			p.Image = PlaceholderImageURL
			fixed++
		}
	}
	return fixed
}

// PhotoObjectKey names an uploaded product photo. The millisecond suffix
// keeps repeated uploads for the same product from overwriting each other.
func PhotoObjectKey(productID string, t time.Time) string {
	return fmt.Sprintf("%s_%d", productID, t.UnixMilli())
}
