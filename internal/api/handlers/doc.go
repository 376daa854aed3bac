// Package handlers implements the healthwatch HTTP API. Query and admin
// endpoints are huma operations registered with RegisterXRoutes; the probe
// endpoints are plain Echo handlers.
package handlers

// StatusResponse is the body of the probe endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
