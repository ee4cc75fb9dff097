// Package api exposes the gateway over HTTP.
//
// Tenant routes under /api/v1/deployments act on the tenant named by the
// X-Tenant-ID header, which the authenticating proxy in front of the
// gateway sets. Admin routes under /api/v1/admin require the admin bearer
// token.
package api
