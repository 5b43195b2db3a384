package ghost

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrDatabaseRequired = errors.New("ghost: export requires at least one database")
	ErrBodyRequired     = errors.New("ghost: post requires an html or markdown body")
)

// Validate checks that the envelope carries everything the export transform
// needs to emit a complete document. It fails on the first invalid post so
// the error names the offending entity and field.
func (e *Export) Validate() error {
	if e == nil || len(e.DB) == 0 {
		return ErrDatabaseRequired
	}
	return e.DB[0].Validate()
}

// Validate checks every post in the dataset.
func (d *Database) Validate() error {
	for i := range d.Data.Posts {
		if err := d.Data.Posts[i].Validate(); err != nil {
			return fmt.Errorf("ghost: post %d: %w", i, err)
		}
	}
	return nil
}

// Validate enforces the fields required to emit a WXR item.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Slug, validation.Required),
		validation.Field(&p.Status, validation.Required),
		validation.Field(&p.PublishedAt, validation.Required),
		validation.Field(&p.HTML, validation.By(p.requireBody)),
	)
}

func (p Post) requireBody(any) error {
	if strings.TrimSpace(p.HTML) == "" && strings.TrimSpace(p.Markdown) == "" {
		return ErrBodyRequired
	}
	return nil
}
