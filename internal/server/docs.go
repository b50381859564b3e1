// Package server provides HTTP server implementation for the servicemap API.
//
// This file contains general API documentation annotations for Swag/OpenAPI generation.
// These annotations describe the overall API (title, version, security, etc.)
// while individual endpoint annotations live in the handler files.
package server

// @title Servicemap API
// @version 1.0
// @description REST API over the linked service hierarchy: services grouped by
// @description service group and type, cross-linked to funding sources, care management
// @description activities and restorative activities, with reference prices.
// @description
// @description Features:
// @description - Accent and case insensitive search with categorical filters
// @description - Breadcrumb lineage for every service
// @description - Tiered price resolution (exact or fuzzy, service or type level)
// @description - Funding source and activity explorers
// @description - In-memory caching flushed on every rebuild
// @description - Rate limiting and authentication support
//
// @contact.name Servicemap Project
// @contact.url https://github.com/agentstation/servicemap
//
// @license.name MIT
// @license.url https://github.com/agentstation/servicemap/blob/master/LICENSE
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for authentication (optional, configurable)
