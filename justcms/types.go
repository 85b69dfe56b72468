package justcms

import (
	"encoding/json"
	"time"
)

// BlockType identifies the kind of a content block
type BlockType string

const (
	// BlockTypeHeader represents a heading block
	BlockTypeHeader BlockType = "header"
	// BlockTypeList represents a list block
	BlockTypeList BlockType = "list"
	// BlockTypeEmbed represents an embedded resource block
	BlockTypeEmbed BlockType = "embed"
	// BlockTypeImage represents an image gallery block
	BlockTypeImage BlockType = "image"
	// BlockTypeCode represents a code snippet block
	BlockTypeCode BlockType = "code"
	// BlockTypeText represents a rich text block
	BlockTypeText BlockType = "text"
	// BlockTypeCTA represents a call-to-action block
	BlockTypeCTA BlockType = "cta"
	// BlockTypeCustom represents a user-defined block with arbitrary fields
	BlockTypeCustom BlockType = "custom"
)

// IsCustom checks if the block type is the open custom variant
func (bt BlockType) IsCustom() bool {
	return bt == BlockTypeCustom
}

// Category represents a page category, unique by slug within a project
type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ImageVariant represents a single rendition of an image
type ImageVariant struct {
	URL      string `json:"url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Filename string `json:"filename"`
}

// Image represents an image with its server-ordered renditions.
// By convention index 0 is the small/default rendition and index 1
// the large one; the ordering is a server contract.
type Image struct {
	Alt      string         `json:"alt"`
	Variants []ImageVariant `json:"variants"`
}

// PageMeta holds SEO metadata for a page
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageSummary represents listing-level page metadata
type PageSummary struct {
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	CoverImage *Image     `json:"coverImage"`
	Slug       string     `json:"slug"`
	Categories []Category `json:"categories"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// PageDetail represents a full page including its content blocks
type PageDetail struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	Meta       PageMeta       `json:"meta"`
	CoverImage *Image         `json:"coverImage"`
	Slug       string         `json:"slug"`
	Categories []Category     `json:"categories"`
	Content    []ContentBlock `json:"content"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// HasCategory checks if any of the page's categories has the given slug.
// The comparison is exact (case-sensitive).
func (p *PageDetail) HasCategory(slug string) bool {
	for _, cat := range p.Categories {
		if cat.Slug == slug {
			return true
		}
	}
	return false
}

// PagesResponse is the result of a page listing call
type PagesResponse struct {
	Items []PageSummary `json:"items"`
	Total int           `json:"total"`
}

// ContentBlock is one unit of structured page content. The set of kinds
// is closed except for the custom variant, which carries an opaque
// BlockID plus whatever extra fields the server sent in Fields.
type ContentBlock struct {
	Type   BlockType `json:"type"`
	Styles []string  `json:"styles"`

	// Header / text / cta blocks
	Text string `json:"text,omitempty"`

	// Header blocks
	Level int `json:"level,omitempty"`

	// List blocks
	Ordered bool     `json:"ordered,omitempty"`
	Items   []string `json:"items,omitempty"`

	// Embed blocks
	URL string `json:"url,omitempty"`

	// Image blocks
	Images []Image `json:"images,omitempty"`

	// Code blocks
	Code string `json:"code,omitempty"`

	// CTA blocks
	Link string `json:"link,omitempty"`

	// Custom blocks
	BlockID string                     `json:"blockId,omitempty"`
	Fields  map[string]json.RawMessage `json:"-"`
}

// knownBlockKeys are the fields consumed by the typed ContentBlock
// members; anything else on a custom block lands in Fields.
var knownBlockKeys = map[string]struct{}{
	"type": {}, "styles": {}, "text": {}, "level": {}, "ordered": {},
	"items": {}, "url": {}, "images": {}, "code": {}, "link": {},
	"blockId": {},
}

// UnmarshalJSON decodes a content block, preserving unrecognized fields
// for custom blocks so unknown future block shapes survive a round trip
// through the client.
func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	type alias ContentBlock
	var block alias
	if err := json.Unmarshal(data, &block); err != nil {
		return err
	}
	*b = ContentBlock(block)

	if !b.Type.IsCustom() {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if _, known := knownBlockKeys[key]; known {
			continue
		}
		if b.Fields == nil {
			b.Fields = make(map[string]json.RawMessage)
		}
		b.Fields[key] = value
	}
	return nil
}

// MenuItem is a single entry in a menu tree
type MenuItem struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Icon     string     `json:"icon"`
	URL      string     `json:"url"`
	Styles   []string   `json:"styles"`
	Children []MenuItem `json:"children"`
}

// Menu represents a named tree of menu items
type Menu struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// LayoutItem is one typed entry of a layout; Value's shape depends on
// Type and is opaque to the client
type LayoutItem struct {
	Label       string          `json:"label"`
	Description string          `json:"description"`
	UID         string          `json:"uid"`
	Type        string          `json:"type"`
	Value       json.RawMessage `json:"value"`
}

// Layout represents a named, ordered collection of typed items
type Layout struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []LayoutItem `json:"items"`
}
