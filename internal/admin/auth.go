// Package admin holds the dashboard credential check. There is a single
// admin account sourced from configuration; this is deliberately not a user
// system.
package admin

import (
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type Credentials struct {
	mu    sync.Mutex
	email string
	hash  []byte
}

func NewCredentials(email, password string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Credentials{email: strings.ToLower(email), hash: hash}, nil
}

func (c *Credentials) Check(email, password string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.ToLower(email) != c.email {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}

// Reset replaces the password for the configured account. The change lives
// only for the process lifetime; a restart restores the configured value.
func (c *Credentials) Reset(email, newPassword string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.ToLower(email) != c.email {
		return false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false
	}
	c.hash = hash
	return true
}
