//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/servicemap --repository.default-branch master --repository.path /pkg/catalogs

// Package catalogs defines the input records of the service map: the flat
// service catalog, funding sources, care management and restorative
// activities, and the price reference table.
package catalogs
