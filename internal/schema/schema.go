// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package schema validates content items per resource. The structural shape
// shared by every resource is a JSON Schema; resource-specific rules are
// layered on top with ozzo-validation. Validation is advisory: Check never
// drops an item, it marks it untrusted and keeps the original payload.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"sitecontent/internal/models"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("schema validation failed")

//go:embed schemas/item.json
var itemSchema []byte

var (
	baseOnce   sync.Once
	baseSchema *jsonschema.Schema
	baseErr    error
)

// compiledBase compiles the shared item schema once per process.
func compiledBase() (*jsonschema.Schema, error) {
	baseOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("item.json", bytes.NewReader(itemSchema)); err != nil {
			baseErr = err
			return
		}
		baseSchema, baseErr = compiler.Compile("item.json")
	})
	return baseSchema, baseErr
}

// Issue is a single validation failure at a JSON pointer location.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	loc := strings.TrimSpace(i.Location)
	if loc == "" {
		loc = "#"
	} else if !strings.HasPrefix(loc, "#") {
		loc = "#" + loc
	}
	if i.Message == "" {
		return loc
	}
	return loc + ": " + i.Message
}

// Error reports why an item failed validation for a resource.
type Error struct {
	Resource models.Resource
	Issues   []Issue
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: %s", e.Resource, ErrInvalid)
	}
	return fmt.Sprintf("%s: %s", e.Resource, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Issues extracts validation issues from err.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var schemaErr *Error
	if errors.As(err, &schemaErr) {
		return schemaErr.Issues
	}
	var jsErr *jsonschema.ValidationError
	if errors.As(err, &jsErr) {
		return collectSchemaIssues(jsErr)
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		issues := make([]Issue, 0, len(keys))
		for _, k := range keys {
			issues = append(issues, Issue{Location: "/" + k, Message: fieldErrs[k].Error()})
		}
		return issues
	}
	return []Issue{{Message: err.Error()}}
}

func collectSchemaIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// Validator validates raw items for one resource.
type Validator struct {
	resource models.Resource
	base     *jsonschema.Schema
	rules    func(*models.Item) error
}

// For returns the validator for resource. Unknown resources are an error.
func For(resource models.Resource) (*Validator, error) {
	rules, ok := resourceRules[resource]
	if !ok {
		return nil, fmt.Errorf("schema: no validator for resource %q", resource)
	}
	base, err := compiledBase()
	if err != nil {
		return nil, fmt.Errorf("schema: compile item schema: %w", err)
	}
	return &Validator{resource: resource, base: base, rules: rules}, nil
}

// Resource returns the resource this validator checks.
func (v *Validator) Resource() models.Resource {
	return v.resource
}

// Validate checks raw against the item schema and the resource rules and
// returns the typed item.
func (v *Validator) Validate(raw json.RawMessage) (models.Item, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.Item{}, &Error{Resource: v.resource, Issues: []Issue{{Message: "invalid JSON: " + err.Error()}}}
	}
	if err := v.base.Validate(payload); err != nil {
		return models.Item{}, &Error{Resource: v.resource, Issues: Issues(err)}
	}

	var item models.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.Item{}, &Error{Resource: v.resource, Issues: []Issue{{Message: err.Error()}}}
	}
	if err := v.rules(&item); err != nil {
		return models.Item{}, &Error{Resource: v.resource, Issues: Issues(err)}
	}
	return item, nil
}

// Check validates raw and never fails: an invalid payload comes back as an
// untrusted document carrying the original bytes and the issues found.
func (v *Validator) Check(raw json.RawMessage) models.Document {
	item, err := v.Validate(raw)
	if err == nil {
		return models.Document{Item: item, Raw: raw, Trusted: true}
	}

	doc := models.Document{Raw: raw}
	for _, issue := range Issues(err) {
		doc.Issues = append(doc.Issues, issue.String())
	}
	// Best-effort view; Unmarshal keeps decoding past type mismatches.
	_ = json.Unmarshal(raw, &doc.Item)
	return doc
}

// CheckItem validates an in-memory item, such as one from the mock set.
func (v *Validator) CheckItem(item models.Item) models.Document {
	raw, err := json.Marshal(item)
	if err != nil {
		return models.Document{Item: item, Issues: []string{err.Error()}}
	}
	doc := v.Check(raw)
	if !doc.Trusted {
		doc.Item = item
	}
	return doc
}
