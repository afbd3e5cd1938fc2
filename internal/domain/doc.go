// Package domain defines accounts, roles and tasks together with their
// validation rules, and the error values shared by every layer.
package domain
