package postgres

import (
	"github.com/guardforce/workforce-management/internal/dashboard"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) StatusCounts(supervisorIDs []int64, unrestricted bool) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	query := r.db.Table("guard_assignments").
		Select("status, COUNT(*) AS count").
		Group("status")

	if !unrestricted {
		if len(supervisorIDs) == 0 {
			return map[string]int64{}, nil
		}
		query = query.Where("supervisor_id IN ?", supervisorIDs)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *DashboardRepository) LocationRollups(supervisorIDs []int64, unrestricted bool) ([]dashboard.LocationRollup, error) {
	rollups := []dashboard.LocationRollup{}

	query := r.db.Table("locations AS l").
		Select(`l.id AS location_id,
			l.name AS location_name,
			COALESCE(bh.required_headcount, 0) AS required_headcount,
			COALESCE(SUM(CASE WHEN ga.status = 'ACTIVE' THEN 1 ELSE 0 END), 0) AS active_count,
			COALESCE(SUM(CASE WHEN ga.status = 'PENDING' THEN 1 ELSE 0 END), 0) AS pending_count`).
		Joins(`LEFT JOIN (
			SELECT location_id, SUM(required_headcount) AS required_headcount
			FROM beats WHERE is_active GROUP BY location_id
		) bh ON bh.location_id = l.id`).
		Where("l.is_active").
		Group("l.id, l.name, bh.required_headcount").
		Order("l.name")

	if unrestricted {
		query = query.Joins("LEFT JOIN guard_assignments ga ON ga.location_id = l.id")
	} else {
		if len(supervisorIDs) == 0 {
			return rollups, nil
		}
		query = query.Joins("LEFT JOIN guard_assignments ga ON ga.location_id = l.id AND ga.supervisor_id IN ?", supervisorIDs)
	}

	if err := query.Scan(&rollups).Error; err != nil {
		return nil, err
	}
	return rollups, nil
}
