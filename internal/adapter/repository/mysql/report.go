package mysql

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"landbank-backend/internal/domain/portfolio"
)

type PortfolioRepository struct{ db *gorm.DB }

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository { return &PortfolioRepository{db: db} }

const portfolioColumns = `s.id AS site_id, s.owner_type, COALESCE(s.company_name, '') AS company_name,
	COALESCE(s.first_name, '') AS first_name, COALESCE(s.other_names, '') AS other_names, COALESCE(s.surname, '') AS surname,
	s.landowner_id, COALESCE(lo.company_name, '') AS landowner_company,
	COALESCE(lo.first_name, '') AS landowner_first_name, COALESCE(lo.surname, '') AS landowner_surname,
	COALESCE(sec.name, '') AS sector, COALESCE(act.name, '') AS activity, COALESCE(fb.name, '') AS facility_branch,
	COALESCE(s.project_description, '') AS project_description, s.stage, s.status, s.awarded_investor_id,
	s.created_at, s.updated_at`

func (r *PortfolioRepository) base(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("sites AS s").
		Joins("LEFT JOIN land_owners AS lo ON lo.id = s.landowner_id").
		Joins("LEFT JOIN sectors AS sec ON sec.id = s.sector_id").
		Joins("LEFT JOIN activities AS act ON act.id = s.activity_id").
		Joins("LEFT JOIN facility_branches AS fb ON fb.id = s.facilitybranch_id")

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + escapeLike(term) + "%"
		q = q.Where(`s.first_name LIKE ? ESCAPE '!' OR s.other_names LIKE ? ESCAPE '!'
			OR s.surname LIKE ? ESCAPE '!' OR s.company_name LIKE ? ESCAPE '!'
			OR lo.first_name LIKE ? ESCAPE '!' OR lo.other_names LIKE ? ESCAPE '!'
			OR lo.surname LIKE ? ESCAPE '!' OR lo.company_name LIKE ? ESCAPE '!'`,
			like, like, like, like, like, like, like, like)
	}
	return q
}

func (r *PortfolioRepository) Portfolio(ctx context.Context, q portfolio.Query) ([]portfolio.Row, int64, error) {
	q = q.Normalize()

	var total int64
	if err := r.base(ctx, q.Search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []portfolio.Row
	err := r.base(ctx, q.Search).
		Select(portfolioColumns).
		Order("s.id DESC").
		Limit(q.PageSize).
		Offset(q.Offset()).
		Scan(&rows).Error
	return rows, total, err
}

// escapeLike uses '!' as the escape character so the same SQL runs on MySQL and SQLite.
func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}
