package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE COLLATE NOCASE,
			username TEXT NOT NULL UNIQUE COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			account_type TEXT NOT NULL,
			suspended INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			doc_id TEXT NOT NULL,
			owner_id TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, doc_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(collection, owner_id)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_conversation ON chat_messages(conversation_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const userColumns = `user_id, email, username, password_hash, full_name, phone, account_type, suspended, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName, &u.Phone, &u.AccountType, &u.Suspended, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.UserID, user.Email, user.Username, user.PasswordHash, user.FullName, user.Phone, user.AccountType, user.Suspended, user.CreatedAt)
	return err
}

// GetUser retrieves a user by ID. It returns nil when the user does not exist.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// GetUserByLogin retrieves a user by username or email, case-insensitively.
func (s *SQLiteStore) GetUserByLogin(ctx context.Context, identifier string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`, identifier, identifier))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// ListUsers lists all users, oldest first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SetUserSuspended flags or unflags a user. It reports whether the user exists.
func (s *SQLiteStore) SetUserSuspended(ctx context.Context, userID string, suspended bool) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET suspended = ? WHERE user_id = ?`, suspended, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountUsersByType counts users per account type.
func (s *SQLiteStore) CountUsersByType(ctx context.Context) (map[domain.AccountType]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT account_type, COUNT(*) FROM users GROUP BY account_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.AccountType]int)
	for rows.Next() {
		var t domain.AccountType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// PutDocument inserts or replaces a document.
func (s *SQLiteStore) PutDocument(ctx context.Context, collection, docID, ownerID string, data domain.Payload) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	now := time.Now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, owner_id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(collection, doc_id) DO UPDATE SET owner_id = excluded.owner_id, data = excluded.data, updated_at = excluded.updated_at`,
		collection, docID, ownerID, string(raw), now, now)
	return err
}

// GetDocument retrieves a document. It returns nil when it does not exist.
func (s *SQLiteStore) GetDocument(ctx context.Context, collection, docID string) (domain.Payload, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND doc_id = ?`, collection, docID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc domain.Payload
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("corrupt document %s/%s: %w", collection, docID, err)
	}
	return doc, nil
}

// ListDocuments lists documents matching filter, oldest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]domain.Payload, error) {
	query := `SELECT data FROM documents WHERE collection = ?`
	args := []interface{}{filter.Collection}
	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY created_at ASC, doc_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []domain.Payload{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc domain.Payload
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("corrupt document in %s: %w", filter.Collection, err)
		}
		if matches(doc, filter.Fields) {
			docs = append(docs, doc)
		}
	}
	return docs, rows.Err()
}

func matches(doc domain.Payload, fields map[string]string) bool {
	for k, want := range fields {
		if want == "" {
			continue
		}
		if !strings.EqualFold(doc.String(k), want) {
			return false
		}
	}
	return true
}

// DeleteDocument removes a document and reports whether it existed.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, collection, docID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND doc_id = ?`, collection, docID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountDocuments counts the documents of a collection.
func (s *SQLiteStore) CountDocuments(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&n)
	return n, err
}

// CreateConversation creates an empty conversation.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conversationID, userID string) error {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		conversationID, userID, now, now)
	return err
}

// AppendMessage appends a message to a conversation.
func (s *SQLiteStore) AppendMessage(ctx context.Context, conversationID string, msg domain.ChatMessage) error {
	ts := time.Now()
	if msg.Timestamp != nil {
		ts = *msg.Timestamp
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_messages (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		conversationID, msg.Role, msg.Content, ts); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE conversation_id = ?`, ts, conversationID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetConversation retrieves a conversation with its messages in order. It
// returns nil when the conversation does not exist.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.ConversationHistory, error) {
	var h domain.ConversationHistory
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, created_at, updated_at FROM conversations WHERE conversation_id = ?`,
		conversationID).Scan(&h.ConversationID, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content, created_at FROM chat_messages WHERE conversation_id = ? ORDER BY seq ASC`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	h.Messages = []domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		var ts time.Time
		if err := rows.Scan(&msg.Role, &msg.Content, &ts); err != nil {
			return nil, err
		}
		msg.Timestamp = &ts
		h.Messages = append(h.Messages, msg)
	}
	return &h, rows.Err()
}

// ListConversations lists a user's conversations, most recently updated first.
// Messages are not loaded.
func (s *SQLiteStore) ListConversations(ctx context.Context, userID string) ([]domain.ConversationHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []domain.ConversationHistory{}
	for rows.Next() {
		var h domain.ConversationHistory
		if err := rows.Scan(&h.ConversationID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// DeleteConversation removes a conversation and its messages.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, conversationID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE conversation_id = ?`, conversationID); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE conversation_id = ?`, conversationID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
