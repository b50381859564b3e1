//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/servicemap --repository.default-branch master --repository.path /

// Package servicemap builds a navigable map of home-care services from a
// set of source catalogs. Services are arranged into a group, type and
// service hierarchy, cross-linked to the funding sources and activity
// catalogs that apply to them, priced against a reference price table and
// searchable by free text and categorical filters.
package servicemap
