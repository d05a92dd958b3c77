// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package schema

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
)

// resourceRules holds the rules layered on the shared item schema.
var resourceRules = map[models.Resource]func(*models.Item) error{
	models.ResourceBlog:     blogRules,
	models.ResourceProjects: projectRules,
}

var notBlank = validation.NewStringRule(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, "must not be blank")

var isoDate = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return nil
	}
	return errors.New("must be an ISO 8601 date")
})

func supportedLanguage() validation.Rule {
	langs := i18n.Supported()
	values := make([]interface{}, len(langs))
	for i, l := range langs {
		values[i] = l
	}
	return validation.In(values...).Error("must be a supported language")
}

// blogRules: posts are dated.
func blogRules(it *models.Item) error {
	return validation.ValidateStruct(it,
		validation.Field(&it.ID, validation.Required),
		validation.Field(&it.Title, validation.Required, notBlank),
		validation.Field(&it.Body, validation.Required, notBlank),
		validation.Field(&it.Language, supportedLanguage()),
		validation.Field(&it.Date, validation.Required, isoDate),
	)
}

// projectRules: projects are categorized; the date is optional.
func projectRules(it *models.Item) error {
	return validation.ValidateStruct(it,
		validation.Field(&it.ID, validation.Required),
		validation.Field(&it.Title, validation.Required, notBlank),
		validation.Field(&it.Body, validation.Required, notBlank),
		validation.Field(&it.Category, validation.Required),
		validation.Field(&it.Language, supportedLanguage()),
		validation.Field(&it.Date, isoDate),
	)
}
