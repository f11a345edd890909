// Package sanitizer cleans HTML with bluemonday policies.
package sanitizer
