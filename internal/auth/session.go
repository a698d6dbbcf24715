package auth

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Shabari-K-S/Medicare/internal/hospital"
)

// LoginSession is the identity persisted between program runs.
type LoginSession struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

// WriteSession persists the logged-in user's identity to the session file.
func WriteSession(path string, user *hospital.User) error {
	content := fmt.Sprintf("%d\n%s\n%s\n%s\n", user.ID, user.Name, user.Email, user.Role)
	return errors.Wrap(os.WriteFile(path, []byte(content), 0600), "writing session file")
}

// ReadSession loads the persisted identity. Returns nil if no session exists.
func ReadSession(path string) (*LoginSession, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading session file")
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 4 {
		return nil, errors.Errorf("malformed session file (%d lines)", len(lines))
	}
	userID, err := strconv.ParseInt(lines[0], 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing session user id")
	}
	return &LoginSession{
		UserID: userID,
		Name:   lines[1],
		Email:  lines[2],
		Role:   lines[3],
	}, nil
}

// ClearSession removes the session file, logging the user out.
func ClearSession(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "removing session file")
}
