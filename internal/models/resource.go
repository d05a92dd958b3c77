// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content data model shared by the services,
// backends, and HTTP handlers.
package models

import "strings"

// Resource is a content type with its own endpoint, schema, and mock set.
type Resource string

const (
	ResourceBlog     Resource = "blog"
	ResourceProjects Resource = "projects"
)

// endpoints maps each resource to the slug used under /api.
var endpoints = map[Resource]string{
	ResourceBlog:     "posts",
	ResourceProjects: "projects",
}

// Resources returns every known resource.
func Resources() []Resource {
	return []Resource{ResourceBlog, ResourceProjects}
}

// ParseResource accepts a resource name or its endpoint slug
// ("blog" or "posts", "projects").
func ParseResource(s string) (Resource, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, ep := range endpoints {
		if s == string(r) || s == ep {
			return r, true
		}
	}
	return "", false
}

// Endpoint returns the API path segment for r, or "" if r is unknown.
func (r Resource) Endpoint() string {
	return endpoints[r]
}

// Collection returns the backend collection name for r. Collections share
// the endpoint naming.
func (r Resource) Collection() string {
	return endpoints[r]
}

func (r Resource) String() string { return string(r) }
