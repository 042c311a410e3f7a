package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the marketplace schema the dashboard reads from.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&contractorRecord{},
		&projectRecord{},
		&bidRecord{},
	)
}

// Contractor schema mirrors the dashboard Postgres adapter.
type contractorRecord struct {
	ID        string   `gorm:"primaryKey;column:id;size:64"`
	UserID    string   `gorm:"column:user_id;size:64;uniqueIndex"`
	Rating    *float64 `gorm:"column:rating"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (contractorRecord) TableName() string { return "contractors" }

// Project schema; the composite index serves the open-projects-by-recency query.
type projectRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	HomeownerID string    `gorm:"column:homeowner_id;size:64;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	City        string    `gorm:"column:city"`
	BudgetMin   *float64  `gorm:"column:budget_min"`
	BudgetMax   *float64  `gorm:"column:budget_max"`
	Status      string    `gorm:"column:status;type:varchar(32);index:idx_projects_status_created"`
	CreatedAt   time.Time `gorm:"column:created_at;index:idx_projects_status_created"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (projectRecord) TableName() string { return "projects" }

// Bid schema; contractor_id backs the per-contractor status projection.
type bidRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	ProjectID    string    `gorm:"column:project_id;size:64;index"`
	ContractorID string    `gorm:"column:contractor_id;size:64;index"`
	Amount       *float64  `gorm:"column:amount"`
	Status       string    `gorm:"column:status;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (bidRecord) TableName() string { return "bids" }
