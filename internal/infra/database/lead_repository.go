package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
)

// Leitura vem da view (traz owner_avatar); escrita vai direto na tabela.
const leadColumns = `
	id::text, name, contact_handle, city, origin, engagement_type, age_range,
	status, owner_id::text, owner_name, owner_avatar, feeling, tracking_info,
	created_at, assignment_time`

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM view_sales_os ORDER BY created_at DESC NULLS LAST`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar leads: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler leads: %w", err)
	}
	return leads, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id entity.LeadID) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM view_sales_os WHERE id = $1`

	l, err := scanLead(r.DB.QueryRowContext(ctx, query, string(id)))
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	query := `
		INSERT INTO leads (
			name, contact_handle, city, origin, engagement_type, age_range,
			status, owner_id, owner_name, tracking_info, created_at, assignment_time
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id::text
	`

	tracking, err := marshalTracking(l.TrackingInfo)
	if err != nil {
		return err
	}

	var id string
	err = r.DB.QueryRowContext(ctx, query,
		l.Name,
		l.ContactHandle,
		nullString(l.City),
		nullString(l.Origin),
		nullString(l.EngagementType),
		nullString(l.AgeRange),
		string(l.Status),
		nullString(l.OwnerID),
		nullString(l.OwnerName),
		tracking,
		nullTime(l.CreatedAt),
		nullTime(l.AssignmentTime),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("erro ao inserir lead: %w", err)
	}

	l.ID = entity.LeadID(id)
	return nil
}

// UpdateStatus grava status e, quando houver, o novo dono.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id entity.LeadID, status entity.Status, ownership *entity.OwnershipDelta) error {
	var (
		res sql.Result
		err error
	)
	if ownership == nil {
		res, err = r.DB.ExecContext(ctx,
			`UPDATE leads SET status = $2 WHERE id = $1`,
			string(id), string(status))
	} else {
		res, err = r.DB.ExecContext(ctx,
			`UPDATE leads SET status = $2, owner_id = $3, owner_name = $4 WHERE id = $1`,
			string(id), string(status), nullString(ownership.OwnerID), ownership.OwnerName)
	}
	if err != nil {
		if isInvalidText(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("erro ao atualizar status: %w", err)
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) UpdateFields(ctx context.Context, id entity.LeadID, f entity.LeadFields) error {
	query := `
		UPDATE leads SET
			name = $2,
			contact_handle = $3,
			city = $4,
			origin = $5,
			engagement_type = $6,
			age_range = $7,
			status = $8
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		string(id),
		f.Name,
		f.ContactHandle,
		nullString(f.City),
		nullString(f.Origin),
		nullString(f.EngagementType),
		nullString(f.AgeRange),
		nullString(string(f.Status)),
	)
	if err != nil {
		if isInvalidText(err) {
			return entity.ErrLeadNotFound
		}
		return fmt.Errorf("erro ao atualizar lead: %w", err)
	}
	return expectOneRow(res, entity.ErrLeadNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l                                                   entity.Lead
		id                                                  string
		contact, city, origin, engagement, ageRange, status sql.NullString
		ownerID, ownerName, ownerAvatar, feeling            sql.NullString
		tracking                                            []byte
		createdAt, assignmentTime                           sql.NullTime
	)

	err := row.Scan(
		&id, &l.Name, &contact, &city, &origin, &engagement, &ageRange,
		&status, &ownerID, &ownerName, &ownerAvatar, &feeling, &tracking,
		&createdAt, &assignmentTime,
	)
	if err != nil {
		return nil, err
	}

	l.ID = entity.LeadID(id)
	l.ContactHandle = contact.String
	l.City = city.String
	l.Origin = origin.String
	l.EngagementType = engagement.String
	l.AgeRange = ageRange.String
	l.Status = entity.Status(status.String)
	l.OwnerID = ownerID.String
	l.OwnerName = ownerName.String
	l.OwnerAvatar = ownerAvatar.String
	l.Feeling = feeling.String
	l.CreatedAt = timePtr(createdAt)
	l.AssignmentTime = timePtr(assignmentTime)

	if len(tracking) > 0 && string(tracking) != "null" {
		var t entity.TrackingInfo
		if err := json.Unmarshal(tracking, &t); err == nil {
			l.TrackingInfo = &t
		}
	}
	return &l, nil
}

func marshalTracking(t *entity.TrackingInfo) (any, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter tracking_info: %w", err)
	}
	return string(b), nil
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
