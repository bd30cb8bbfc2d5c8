package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"landbank-backend/internal/domain/party"
	"landbank-backend/internal/domain/portfolio"
	"landbank-backend/internal/domain/site"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
	"landbank-backend/pkg/export"
)

type Page struct {
	Items    []portfolio.Row `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type File struct {
	Name        string
	ContentType string
	Content     []byte
}

type Usecase struct {
	reader  portfolio.Reader
	machine *workflow.Machine
	log     *zap.Logger
	now     func() time.Time
}

func NewUsecase(r portfolio.Reader, m *workflow.Machine, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{reader: r, machine: m, log: log, now: time.Now}
}

func (u *Usecase) ListPortfolio(ctx context.Context, q portfolio.Query) (*Page, error) {
	q = q.Normalize()
	q.Search = strings.TrimSpace(q.Search)
	rows, total, err := u.reader.Portfolio(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		u.decorate(&rows[i])
	}
	if rows == nil {
		rows = []portfolio.Row{}
	}
	return &Page{Items: rows, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

var exportHeaders = []string{
	"Site ID", "Owner", "Owner Type", "Landowner", "Sector", "Activity",
	"Facility Branch", "Project", "Stage", "Status", "Created",
}

// Export renders every row matching search, walking the pages in order.
func (u *Usecase) Export(ctx context.Context, search, format string) (*File, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, apperror.Clone(apperror.ErrValidation, err.Error())
	}

	data := export.Dataset{Headers: exportHeaders}
	q := portfolio.Query{Search: search, Page: 1, PageSize: portfolio.MaxPageSize}
	for {
		page, err := u.ListPortfolio(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Items {
			data.Rows = append(data.Rows, map[string]string{
				"Site ID":         strconv.FormatUint(r.SiteID, 10),
				"Owner":           r.OwnerName,
				"Owner Type":      r.OwnerType,
				"Landowner":       r.LandOwnerName,
				"Sector":          r.Sector,
				"Activity":        r.Activity,
				"Facility Branch": r.FacilityBranch,
				"Project":         r.ProjectDescription,
				"Stage":           r.StageLabel,
				"Status":          r.Status,
				"Created":         r.CreatedAt.UTC().Format("2006-01-02"),
			})
		}
		if len(page.Items) < q.PageSize || int64(len(data.Rows)) >= page.Total {
			break
		}
		q.Page++
	}

	content, err := export.Render(f, data, "Site Portfolio")
	if err != nil {
		return nil, err
	}
	u.log.Info("portfolio_exported", zap.String("format", string(f)), zap.Int("rows", len(data.Rows)))
	return &File{
		Name:        fmt.Sprintf("portfolio-%s.%s", u.now().UTC().Format("20060102-150405"), f),
		ContentType: f.ContentType(),
		Content:     content,
	}, nil
}

func (u *Usecase) decorate(r *portfolio.Row) {
	r.OwnerName = party.Identity{
		OwnerType:   party.OwnerType(r.OwnerType),
		FirstName:   r.FirstName,
		OtherNames:  r.OtherNames,
		Surname:     r.Surname,
		CompanyName: r.CompanyName,
	}.DisplayName()
	if r.LandOwnerID != nil {
		if r.LandOwnerCompany != "" {
			r.LandOwnerName = r.LandOwnerCompany
		} else {
			r.LandOwnerName = strings.TrimSpace(r.LandOwnerFirstName + " " + r.LandOwnerSurname)
		}
	}
	if r.Status == string(site.StatusRejected) {
		r.StageLabel = u.machine.Label(r.Stage) + " (rejected)"
	} else {
		r.StageLabel = u.machine.Label(r.Stage)
	}
}
