// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"sitecontent/internal/i18n"
)

// itemKeys are the envelope keys searched for items after the collection's
// own key.
var itemKeys = []string{"items", "data", "posts", "projects"}

// decodeEnvelope reads a list response. The items may sit under the
// collection key or any of the common keys. Absent pagination fields
// default to one page holding every returned item.
func decodeEnvelope(body []byte, collection string) (*Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	keys := itemKeys
	if collection != "" {
		keys = append([]string{collection}, itemKeys...)
	}

	env := &Envelope{}
	found := false
	for _, key := range keys {
		field, ok := raw[key]
		if !ok || bytes.Equal(bytes.TrimSpace(field), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(field, &env.Items); err != nil {
			return nil, fmt.Errorf("%w: %s is not a list", ErrInvalidResponse, key)
		}
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: no items in list response", ErrInvalidResponse)
	}

	if !intField(raw, "totalItems", &env.TotalItems) {
		env.TotalItems = len(env.Items)
	}
	if !intField(raw, "totalPages", &env.TotalPages) {
		env.TotalPages = 1
	}
	if !intField(raw, "currentPage", &env.CurrentPage) {
		env.CurrentPage = 1
	}
	return env, nil
}

func intField(raw map[string]json.RawMessage, key string, dst *int) bool {
	field, ok := raw[key]
	if !ok {
		return false
	}
	return json.Unmarshal(field, dst) == nil
}

// decodeDetail reads a detail response. A {data, langUsed} wrapper is
// unwrapped; any other body is taken as the item itself, so a malformed
// item still reaches validation. A null data field is ErrNotFound.
func decodeDetail(body []byte) (*Detail, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNotFound
	}
	if !json.Valid(trimmed) {
		return nil, ErrInvalidResponse
	}

	var wrapper map[string]json.RawMessage
	if json.Unmarshal(trimmed, &wrapper) != nil {
		return &Detail{Item: json.RawMessage(trimmed)}, nil
	}
	data, wrapped := wrapper["data"]
	if _, hasID := wrapper["id"]; !wrapped || hasID {
		return &Detail{Item: json.RawMessage(trimmed)}, nil
	}

	d := &Detail{}
	if lang, ok := wrapper["langUsed"]; ok {
		var code string
		if json.Unmarshal(lang, &code) == nil {
			if l, ok := i18n.Parse(code); ok {
				d.LangUsed = l
			}
		}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrNotFound
	}
	d.Item = data
	return d, nil
}
