package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID       `gorm:"primaryKey"                 json:"id"`
	ModelNumber int             `gorm:"uniqueIndex;not null"       json:"model_number"`
	Title       string          `gorm:"not null"                   json:"title"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"not null"                   json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

func ModelLabel(n int) string {
	return fmt.Sprintf("MODÈLE EXCELLENCE N°%d", n)
}

// Matches applies the storefront search rule: a blank query matches
// everything, otherwise the model label (case-insensitive) or the model
// number must contain the query.
func (p Product) Matches(query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	if strings.Contains(strings.ToLower(ModelLabel(p.ModelNumber)), strings.ToLower(query)) {
		return true
	}
	return strings.Contains(strconv.Itoa(p.ModelNumber), query)
}

// CartItem is one line of a session's cart. A line is identified by
// (UserSessionID, ProductID, MessageKey); MessageKey is "" when Message is absent.
type CartItem struct {
	ID            uuid.UUID `gorm:"primaryKey"                                             json:"id"`
	UserSessionID string    `gorm:"uniqueIndex:idx_cart_line;index;not null"              json:"user_session_id"`
	ProductID     uuid.UUID `gorm:"uniqueIndex:idx_cart_line;not null"                    json:"product_id"`
	MessageKey    string    `gorm:"uniqueIndex:idx_cart_line;not null;default:''"         json:"-"`
	Message       *string   `json:"message"`
	Quantity      uint      `gorm:"default:1;check:quantity>0"                            json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CartItem) BeforeSave(tx *gorm.DB) error {
	c.Message = NormalizeMessage(c.Message)
	c.MessageKey = MessageKey(c.Message)
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

// SameLine reports whether the item is the line for productID and message.
func (c CartItem) SameLine(productID uuid.UUID, message *string) bool {
	return c.ProductID == productID && SameMessage(c.Message, message)
}

// NewMessage turns free text into an optional message. Blank text is absent.
func NewMessage(text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &text
}

func NormalizeMessage(m *string) *string {
	if m == nil {
		return nil
	}
	return NewMessage(*m)
}

func MessageKey(m *string) string {
	if m = NormalizeMessage(m); m == nil {
		return ""
	}
	return *m
}

func SameMessage(a, b *string) bool {
	a, b = NormalizeMessage(a), NormalizeMessage(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
