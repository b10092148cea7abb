package entity

import (
	"io"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// Product is the persisted catalog record. Field order matches the stored
// JSON layout so re-saving a loaded catalog is byte-stable.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Stock != nil {
		stock := *p.Stock
		cp.Stock = &stock
	}
	return &cp
}

// ImageUpload is a pending upload attached to a create or update. It is
// consumed by image materialization and never persisted.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ProductDraft struct {
	ID          string       `json:"id,omitempty" form:"id"`
	Name        string       `json:"name" form:"name" validate:"notblank"`
	Price       *float64     `json:"price" form:"price" validate:"required,finite,gte=0"`
	Image       string       `json:"image,omitempty" form:"image"`
	Description string       `json:"description" form:"description" validate:"notblank"`
	Category    string       `json:"category,omitempty" form:"category"`
	Stock       *int         `json:"stock,omitempty" form:"stock" validate:"omitnil,gte=0"`
	ImageFile   *ImageUpload `json:"-" form:"-" validate:"-"`
}

// ValidateForCreate reports whether the draft can be persisted, with one
// human-readable reason per failing field.
func (d *ProductDraft) ValidateForCreate() (bool, []string) {
	return check(d)
}

// ProductPatch carries only the fields an update changes. A nil field is
// left untouched.
type ProductPatch struct {
	Name        *string      `json:"name,omitempty" validate:"omitnil,notblank"`
	Price       *float64     `json:"price,omitempty" validate:"omitnil,finite,gte=0"`
	Image       *string      `json:"image,omitempty"`
	Description *string      `json:"description,omitempty" validate:"omitnil,notblank"`
	Category    *string      `json:"category,omitempty"`
	Stock       *int         `json:"stock,omitempty" validate:"omitnil,gte=0"`
	ImageFile   *ImageUpload `json:"-" validate:"-"`
}

func (p *ProductPatch) Validate() (bool, []string) {
	return check(p)
}

// Apply merges the patched scalar fields over product. Image handling is
// left to the caller because it may involve materialization.
func (p *ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Stock != nil {
		stock := *p.Stock
		product.Stock = &stock
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func check(s interface{}) (bool, []string) {
	err := validate.Struct(s)
	if err == nil {
		return true, nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, []string{err.Error()}
	}
	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reasons = append(reasons, reason(fe))
	}
	return false, reasons
}

func reason(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "finite":
		return field + " must be a finite number"
	case "gte":
		return field + " must not be negative"
	case "min":
		return field + " must be at least " + fe.Param()
	default:
		return field + " is invalid"
	}
}
