package hospital

import (
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// User is a member of staff (doctor, nurse, admin).
type User struct {
	ID             int64
	Name           string
	Email          string
	Password       string
	Role           string
	Specialization string
	Phone          string
	Address        string
	DateJoined     string
	Status         string
}

// AddUser inserts a new user and returns its identifier.
func (s *Store) AddUser(user *User) (int64, error) {
	if user.DateJoined == "" {
		user.DateJoined = time.Now().Format("2006-01-02 15:04:05")
	}
	if user.Status == "" {
		user.Status = StatusActive
	}
	result, err := s.db.Exec(`
		INSERT INTO users (name, email, password, role, specialization, phone, address, date_joined, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.Password, user.Role, user.Specialization,
		user.Phone, user.Address, user.DateJoined, user.Status,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting user")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading insert id")
	}
	user.ID = id
	return id, nil
}

// GetUser returns the user with the given id, or nil if absent.
func (s *Store) GetUser(id int64) (*User, error) {
	return s.getUser("id = ?", id)
}

// GetUserByEmail returns the user with the given email, or nil if absent.
func (s *Store) GetUserByEmail(email string) (*User, error) {
	return s.getUser("email = ?", email)
}

func (s *Store) getUser(where string, arg any) (*User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, password, role,
		       COALESCE(specialization, ''), COALESCE(phone, ''), COALESCE(address, ''),
		       COALESCE(date_joined, ''), status
		FROM users WHERE `+where, arg)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying user")
	}
	return user, nil
}

// ListUsers returns all users, optionally filtered by role.
func (s *Store) ListUsers(role string) ([]*User, error) {
	query := `
		SELECT id, name, email, password, role,
		       COALESCE(specialization, ''), COALESCE(phone, ''), COALESCE(address, ''),
		       COALESCE(date_joined, ''), status
		FROM users`
	var args []any
	if role != "" {
		query += " WHERE role = ?"
		args = append(args, role)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning user row")
		}
		users = append(users, user)
	}
	return users, errors.Wrap(rows.Err(), "iterating user rows")
}

// UpdateUser overwrites the fields named in the update mask.
func (s *Store) UpdateUser(user *User, updateMask []string) error {
	allowed := map[string]any{
		"name":           user.Name,
		"email":          user.Email,
		"password":       user.Password,
		"role":           user.Role,
		"specialization": user.Specialization,
		"phone":          user.Phone,
		"address":        user.Address,
		"status":         user.Status,
	}

	var setClauses []string
	var args []any
	for _, field := range updateMask {
		value, ok := allowed[field]
		if !ok {
			return errors.Errorf("unknown user field (%s)", field)
		}
		setClauses = append(setClauses, field+" = ?")
		args = append(args, value)
	}
	if len(setClauses) == 0 {
		return nil
	}
	args = append(args, user.ID)

	_, err := s.db.Exec("UPDATE users SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	return errors.Wrap(err, "updating user")
}

// DeleteUser soft-deletes a user by marking it inactive.
func (s *Store) DeleteUser(id int64) error {
	_, err := s.db.Exec("UPDATE users SET status = ? WHERE id = ?", StatusInactive, id)
	return errors.Wrap(err, "deleting user")
}

func scanUser(row scannable) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Specialization, &user.Phone, &user.Address, &user.DateJoined, &user.Status,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
