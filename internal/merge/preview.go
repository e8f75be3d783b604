package merge

import (
	"fmt"
	"strings"
)

// Side identifies one of the two image slots.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// ParseSide accepts "left" or "right".
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("unknown side %q", v)
	}
}

// File is a user-selected file with the media type the client declared.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// Representation is the preview form of a selected image. It is what the
// merge later decodes.
type Representation struct {
	Name      string
	MediaType string
	Data      []byte
}

// Preview is what one side shows: either a placeholder or an image.
type Preview struct {
	Placeholder Message
	Image       *Representation
}

// Valid reports whether the side holds a usable image selection.
func (p Preview) Valid() bool { return p.Image != nil }

// Present builds the preview for f. Files whose declared media type is not
// image/* are rejected without being decoded.
func Present(f *File) Preview {
	if f == nil {
		return Preview{Placeholder: MsgNoImage}
	}
	if !strings.HasPrefix(strings.ToLower(f.MediaType), "image/") {
		return Preview{Placeholder: MsgNotImage}
	}
	return Preview{Image: &Representation{Name: f.Name, MediaType: f.MediaType, Data: f.Data}}
}
