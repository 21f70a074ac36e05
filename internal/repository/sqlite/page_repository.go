package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
	"github.com/vytor/userdirectory/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// profileInsertBatch keeps one INSERT well under SQLite's bind variable limit.
const profileInsertBatch = 500

var profileColumns = []string{
	"first_name", "last_name", "email", "phone", "picture_url",
	"street_number", "street_name", "city", "state", "country", "postcode",
	"date_of_birth",
}

type pageRepository struct {
	db *sql.DB
}

// NewPageRepository creates a new PageRepository implementation
func NewPageRepository(db *sql.DB) repository.PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page models.Page) error {
	log := logger.FromContext(ctx).WithPrefix("page_repo").WithField("page_id", page.ID)
	log.Debug("storing page with %d profiles", len(page.Profiles))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := sqlBuilder.Insert("pages").
			Columns("id", "created_at").
			Values(page.ID, page.CreatedAt.UTC()).
			RunWith(tx).
			ExecContext(ctx); err != nil {
			log.Error("failed to insert page: %v", err)
			return err
		}

		if len(page.Profiles) == 0 {
			return nil
		}

		columns := append([]string{"page_id", "position"}, profileColumns...)
		for start := 0; start < len(page.Profiles); start += profileInsertBatch {
			end := min(start+profileInsertBatch, len(page.Profiles))
			insert := sqlBuilder.Insert("page_profiles").Columns(columns...)
			for i := start; i < end; i++ {
				p := page.Profiles[i]
				insert = insert.Values(
					page.ID, i,
					p.FirstName, p.LastName, p.Email, p.Phone, p.PictureURL,
					p.Street.Number, p.Street.Name, p.City, p.State, p.Country, p.Postcode,
					p.DateOfBirth.UTC(),
				)
			}
			if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
				log.Error("failed to insert page profiles %d-%d: %v", start, end-1, err)
				return err
			}
		}
		return nil
	})
}

func (r *pageRepository) Get(ctx context.Context, id string) (*models.Page, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo").WithField("page_id", id)
	log.Debug("getting page")

	page := models.Page{ID: id}
	err := sqlBuilder.Select("created_at").
		From("pages").
		Where(squirrel.Eq{"id": id}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&page.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("page not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get page: %v", err)
		return nil, err
	}

	rows, err := sqlBuilder.Select(profileColumns...).
		From("page_profiles").
		Where(squirrel.Eq{"page_id": id}).
		OrderBy("position ASC").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		log.Error("failed to query page profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	page.Profiles = []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PictureURL,
			&p.Street.Number, &p.Street.Name, &p.City, &p.State, &p.Country, &p.Postcode,
			&p.DateOfBirth,
		); err != nil {
			log.Error("failed to scan page profile: %v", err)
			return nil, err
		}
		p.DateOfBirth = p.DateOfBirth.UTC()
		page.Profiles = append(page.Profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page.CreatedAt = page.CreatedAt.UTC()
	log.Debug("page loaded with %d profiles", len(page.Profiles))
	return &page, nil
}

func (r *pageRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("page_repo")
	log.Debug("deleting pages created before %s", cutoff.UTC().Format(time.RFC3339))

	var deleted int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		expired := sqlBuilder.Select("id").From("pages").Where(squirrel.Lt{"created_at": cutoff.UTC()})
		expiredSQL, expiredArgs, err := expired.ToSql()
		if err != nil {
			return err
		}

		if _, err := sqlBuilder.Delete("page_profiles").
			Where("page_id IN ("+expiredSQL+")", expiredArgs...).
			RunWith(tx).
			ExecContext(ctx); err != nil {
			log.Error("failed to delete expired page profiles: %v", err)
			return err
		}

		res, err := sqlBuilder.Delete("pages").
			Where(squirrel.Lt{"created_at": cutoff.UTC()}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			log.Error("failed to delete expired pages: %v", err)
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	log.Debug("deleted %d expired pages", deleted)
	return deleted, nil
}
