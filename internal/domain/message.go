package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies which side of the conversation produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Part is one typed element of a multimodal content payload.
type Part struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

const (
	PartText  = "input_text"
	PartImage = "input_image"
)

// Content is either plain text or a sequence of typed parts. It marshals
// as a bare JSON string for text turns to keep history files readable.
type Content struct {
	Text  string
	Parts []Part
}

func TextContent(text string) Content {
	return Content{Text: text}
}

func ImageContent(url string) Content {
	return Content{Parts: []Part{{Type: PartImage, ImageURL: url}}}
}

// Value returns the wire representation expected by the completion API:
// a string for text content, the part list otherwise.
func (c Content) Value() any {
	if len(c.Parts) > 0 {
		return c.Parts
	}
	return c.Text
}

func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Value())
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Parts = nil
		return nil
	}
	var parts []Part
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	c.Text = ""
	c.Parts = parts
	return nil
}

// Price is a dollar amount serialized with 8 fractional digits, matching
// the fixed precision used in stored history files.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{d}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.StringFixed(8))), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		p.Decimal = decimal.Zero
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "" {
		p.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	p.Decimal = d
	return nil
}

// Record is one persisted conversation turn with its accounting metadata.
// Records within a monthly log are append-only and ordered by insertion.
type Record struct {
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	MessageID int       `json:"message_id,omitempty"`
	ModelName string    `json:"model_name"`
	Tokens    int       `json:"tokens"`
	Price     Price     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
