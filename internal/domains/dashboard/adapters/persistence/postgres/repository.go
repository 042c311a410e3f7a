package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/domain"
	"github.com/Apurer/contractor-dashboard/internal/domains/dashboard/ports"
)

var _ ports.Store = (*Repository)(nil)

// Repository reads dashboard data from PostgreSQL using GORM. Schema is owned
// by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed store. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type contractorRecord struct {
	ID        string   `gorm:"primaryKey;column:id;size:64"`
	UserID    string   `gorm:"column:user_id;size:64;uniqueIndex"`
	Rating    *float64 `gorm:"column:rating"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (contractorRecord) TableName() string { return "contractors" }

type bidRecord struct {
	ID           string `gorm:"primaryKey;column:id;size:64"`
	ProjectID    string `gorm:"column:project_id;size:64;index"`
	ContractorID string `gorm:"column:contractor_id;size:64;index"`
	Status       string `gorm:"column:status;type:varchar(32)"`
	CreatedAt    time.Time
}

func (bidRecord) TableName() string { return "bids" }

type projectRecord struct {
	ID          string      `gorm:"primaryKey;column:id;size:64"`
	Title       string      `gorm:"column:title"`
	Description string      `gorm:"column:description"`
	City        string      `gorm:"column:city"`
	BudgetMin   *float64    `gorm:"column:budget_min"`
	BudgetMax   *float64    `gorm:"column:budget_max"`
	Status      string      `gorm:"column:status;type:varchar(32);index:idx_projects_status_created"`
	CreatedAt   time.Time   `gorm:"column:created_at;index:idx_projects_status_created"`
	Bids        []bidRecord `gorm:"foreignKey:ProjectID"`
}

func (projectRecord) TableName() string { return "projects" }

// GetProfile loads the contractor profile keyed by the viewer's user id.
func (r *Repository) GetProfile(ctx context.Context, viewer domain.ViewerID) (*domain.ContractorProfile, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record contractorRecord
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", string(viewer)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &domain.ContractorProfile{UserID: domain.ViewerID(record.UserID), Rating: record.Rating}, nil
}

// ListBidStatuses projects the status column of the contractor's bids.
func (r *Repository) ListBidStatuses(ctx context.Context, contractor domain.ViewerID) ([]domain.BidStatus, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var raw []string
	if err := r.db.WithContext(ctx).
		Model(&bidRecord{}).
		Where("contractor_id = ?", string(contractor)).
		Pluck("status", &raw).Error; err != nil {
		return nil, err
	}
	statuses := make([]domain.BidStatus, 0, len(raw))
	for _, status := range raw {
		statuses = append(statuses, domain.BidStatus(status))
	}
	return statuses, nil
}

// ListOpenProjects returns the newest open projects with their bid summaries.
func (r *Repository) ListOpenProjects(ctx context.Context, limit int) ([]*domain.Project, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "project_id", "contractor_id")
		}).
		Where("status = ?", string(domain.ProjectOpen)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []projectRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(records))
	for i := range records {
		projects = append(projects, records[i].toDomain())
	}
	return projects, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres dashboard repository not configured")
	}
	return nil
}

func (r projectRecord) toDomain() *domain.Project {
	project := &domain.Project{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		City:        r.City,
		BudgetMin:   r.BudgetMin,
		BudgetMax:   r.BudgetMax,
		CreatedAt:   r.CreatedAt,
		Status:      domain.ProjectStatus(r.Status),
	}
	if len(r.Bids) > 0 {
		project.Bids = make([]domain.BidSummary, 0, len(r.Bids))
		for _, bid := range r.Bids {
			project.Bids = append(project.Bids, domain.BidSummary{ID: bid.ID, ContractorID: domain.ViewerID(bid.ContractorID)})
		}
	}
	return project
}
