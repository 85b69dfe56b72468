package justcms

import "strings"

// HasStyle checks if the block carries the given style label. The
// comparison is case-insensitive.
func (b ContentBlock) HasStyle(style string) bool {
	for _, s := range b.Styles {
		if strings.EqualFold(s, style) {
			return true
		}
	}
	return false
}

// LargeImageVariant returns the large rendition of an image, which the
// server places at index 1 of the variants. This is a positional
// accessor, not a largest-by-area computation; the caller must ensure
// at least two variants exist.
func LargeImageVariant(img Image) ImageVariant {
	return img.Variants[1]
}

// FirstImage returns the first image of an image-type content block.
// The caller must ensure the block carries at least one image.
func FirstImage(b ContentBlock) Image {
	return b.Images[0]
}
