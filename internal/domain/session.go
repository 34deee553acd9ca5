package domain

import "time"

// AdminSession is a signed capability granting access to admin routes
// until ExpiresAt.
type AdminSession struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}
