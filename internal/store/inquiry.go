// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the database access layer.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"medivisor/internal/models"
)

// InquiryStore persists contact-form leads.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore creates an InquiryStore with the given connection pool.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create inserts a new inquiry and returns it with the generated ID and
// creation timestamp.
func (s *InquiryStore) Create(inq *models.Inquiry) (*models.Inquiry, error) {
	result := &models.Inquiry{}
	err := s.db.QueryRow(`
		INSERT INTO inquiries (name, email, country_name, country_code, whatsapp, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, country_name, country_code, whatsapp, message,
		          forwarded, created_at
	`, inq.Name, inq.Email, inq.CountryName, inq.CountryCode, inq.WhatsApp, inq.Message,
	).Scan(
		&result.ID, &result.Name, &result.Email, &result.CountryName,
		&result.CountryCode, &result.WhatsApp, &result.Message,
		&result.Forwarded, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return result, nil
}

// MarkForwarded records that the external submission endpoint accepted
// the inquiry.
func (s *InquiryStore) MarkForwarded(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE inquiries SET forwarded = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark inquiry forwarded: %w", err)
	}
	return nil
}

// ListRecent returns the newest inquiries, most recent first.
func (s *InquiryStore) ListRecent(limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, name, email, country_name, country_code, whatsapp, message,
		       forwarded, created_at
		FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var items []models.Inquiry
	for rows.Next() {
		var inq models.Inquiry
		if err := rows.Scan(
			&inq.ID, &inq.Name, &inq.Email, &inq.CountryName,
			&inq.CountryCode, &inq.WhatsApp, &inq.Message,
			&inq.Forwarded, &inq.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		items = append(items, inq)
	}
	return items, rows.Err()
}

// CountUnforwarded returns how many leads the external endpoint has not
// accepted yet.
func (s *InquiryStore) CountUnforwarded() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM inquiries WHERE forwarded = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unforwarded inquiries: %w", err)
	}
	return count, nil
}
