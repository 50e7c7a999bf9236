package sqlite

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/binderkit/binder/pkg/types"
)

// hashPassword returns the hex SHA-256 digest of the password. The digest
// is deterministic so stored credentials survive credential updates and
// verification stays a plain compare.
func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// HasAnyUser reports whether at least one account exists. Used by callers
// to decide between first-run registration and login.
func (s *Store) HasAnyUser() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return false, err
	}
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	return count > 0, nil
}

// Register creates an account and, in the same transaction, the owner's
// first default folder. Returns ErrInvalidInput on empty credentials and
// ErrDuplicateUser when the username is taken.
func (s *Store) Register(username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	err := s.withTx(func(tx *sql.Tx) error {
		taken, err := usernameExists(tx, username)
		if err != nil {
			return err
		}
		if taken {
			return types.ErrDuplicateUser
		}
		if _, err := tx.Exec(
			"INSERT INTO users (username, password_hash) VALUES (?, ?)",
			username, hashPassword(password),
		); err != nil {
			return fmt.Errorf("inserting user: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO folders (name, owner) VALUES (?, ?)",
			types.DefaultFolderName, username,
		); err != nil {
			return fmt.Errorf("creating default folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(context.Background(), "user registered", "username", username)
	return nil
}

// Verify checks a password against the stored digest. An unknown username
// verifies false without error.
func (s *Store) Verify(username, password string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return false, err
	}

	var stored string
	err := s.db.QueryRow(
		"SELECT password_hash FROM users WHERE username = ?", username,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading credentials for %s: %w", username, err)
	}

	ok := subtle.ConstantTimeCompare([]byte(stored), []byte(hashPassword(password))) == 1
	if !ok {
		s.log.Warn(context.Background(), "login failed", "username", username)
	}
	return ok, nil
}

// UpdateCredentials renames an account and replaces its password digest,
// rewriting the owner field on every folder and record in the same
// transaction so no row is left under the old identity. A rename onto an
// existing distinct user returns ErrConflict; the rows never merge.
func (s *Store) UpdateCredentials(oldUsername, newUsername, newPassword string) error {
	if oldUsername == "" || newUsername == "" || newPassword == "" {
		return fmt.Errorf("%w: username and password are required", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	err := s.withTx(func(tx *sql.Tx) error {
		exists, err := usernameExists(tx, oldUsername)
		if err != nil {
			return err
		}
		if !exists {
			return types.ErrNotFound
		}
		if newUsername != oldUsername {
			taken, err := usernameExists(tx, newUsername)
			if err != nil {
				return err
			}
			if taken {
				return types.ErrConflict
			}
		}

		if _, err := tx.Exec(
			"UPDATE users SET username = ?, password_hash = ? WHERE username = ?",
			newUsername, hashPassword(newPassword), oldUsername,
		); err != nil {
			return fmt.Errorf("updating user row: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE folders SET owner = ? WHERE owner = ?", newUsername, oldUsername,
		); err != nil {
			return fmt.Errorf("rewriting folder owners: %w", err)
		}
		if _, err := tx.Exec(
			"UPDATE records SET owner = ? WHERE owner = ?", newUsername, oldUsername,
		); err != nil {
			return fmt.Errorf("rewriting record owners: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(context.Background(), "credentials updated",
		"old_username", oldUsername, "new_username", newUsername)
	return nil
}

// EnsureDefaultFolder creates the owner's default folder when the owner
// has none. Invoked once at first authenticated access so folder listing
// stays a pure read. Idempotent.
func (s *Store) EnsureDefaultFolder(owner string) error {
	if owner == "" {
		return fmt.Errorf("%w: owner is required", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(
			"SELECT COUNT(*) FROM folders WHERE owner = ?", owner,
		).Scan(&count); err != nil {
			return fmt.Errorf("counting folders for %s: %w", owner, err)
		}
		if count > 0 {
			return nil
		}
		if _, err := tx.Exec(
			"INSERT INTO folders (name, owner) VALUES (?, ?)",
			types.DefaultFolderName, owner,
		); err != nil {
			return fmt.Errorf("creating default folder: %w", err)
		}
		return nil
	})
}

func usernameExists(tx *sql.Tx, username string) (bool, error) {
	var one int
	err := tx.QueryRow("SELECT 1 FROM users WHERE username = ?", username).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking username %s: %w", username, err)
	}
	return true, nil
}
