// Package handlers contains the HTTP handlers of the newsletter service.
package handlers
