// Package status backs the /status and /stats endpoints.
package status
