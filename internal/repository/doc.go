// Package repository persists subscribers in PostgreSQL.
package repository
