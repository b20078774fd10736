package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/assignment"
	"github.com/guardforce/workforce-management/internal/core/roles"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAssignmentRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AssignmentRepository Suite")
}

type SQLiteGuardAssignment struct {
	ID              int64      `gorm:"primaryKey"`
	OperatorID      int64      `gorm:"column:operator_id;not null"`
	SupervisorID    int64      `gorm:"column:supervisor_id;not null"`
	LocationID      int64      `gorm:"column:location_id;not null"`
	BeatID          int64      `gorm:"column:beat_id;not null"`
	ShiftType       string     `gorm:"column:shift_type"`
	AssignmentType  string     `gorm:"column:assignment_type"`
	Status          string     `gorm:"column:status;default:'PENDING'"`
	StartDate       time.Time  `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	AssignedByID    int64      `gorm:"column:assigned_by_id"`
	AssignedByRole  string     `gorm:"column:assigned_by_role"`
	AssignedByName  string     `gorm:"column:assigned_by_name"`
	ApprovedBy      *int64     `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteGuardAssignment) TableName() string {
	return "guard_assignments"
}

var _ = Describe("AssignmentRepository", func() {
	var (
		db   *gorm.DB
		repo assignment.Repository
	)

	newAssignment := func(operatorID, supervisorID int64, status string) *assignment.Assignment {
		return &assignment.Assignment{
			OperatorID:     operatorID,
			SupervisorID:   supervisorID,
			LocationID:     300,
			BeatID:         200,
			ShiftType:      assignment.ShiftDay,
			AssignmentType: assignment.TypePermanent,
			Status:         status,
			StartDate:      time.Now(),
			AssignedBy: assignment.AssignedBy{
				PersonID: 1,
				Role:     roles.RoleManager,
				Name:     "Area Manager",
			},
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteGuardAssignment{})
		Expect(err).NotTo(HaveOccurred())

		// same partial unique index the production schema carries
		err = db.Exec(`CREATE UNIQUE INDEX idx_assignments_one_active_per_operator
			ON guard_assignments (operator_id) WHERE status = 'ACTIVE'`).Error
		Expect(err).NotTo(HaveOccurred())

		repo = NewAssignmentRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should persist an assignment and backfill the ID", func() {
			a := newAssignment(100, 400, assignment.StatusPending)

			err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))
		})

		It("should enforce one active assignment per operator at the index level", func() {
			first := newAssignment(100, 400, assignment.StatusActive)
			Expect(repo.Create(first)).To(Succeed())

			second := newAssignment(100, 401, assignment.StatusActive)
			err := repo.Create(second)
			Expect(err).To(HaveOccurred())
		})

		It("should allow a pending assignment alongside an active one", func() {
			Expect(repo.Create(newAssignment(100, 400, assignment.StatusActive))).To(Succeed())
			Expect(repo.Create(newAssignment(100, 400, assignment.StatusPending))).To(Succeed())
		})
	})

	Describe("GetByID", func() {
		It("should round-trip the assigned-by snapshot", func() {
			a := newAssignment(100, 400, assignment.StatusPending)
			Expect(repo.Create(a)).To(Succeed())

			retrieved, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.OperatorID).To(Equal(a.OperatorID))
			Expect(retrieved.AssignedBy.PersonID).To(Equal(int64(1)))
			Expect(retrieved.AssignedBy.Role).To(Equal(roles.RoleManager))
			Expect(retrieved.AssignedBy.Name).To(Equal("Area Manager"))
		})

		It("should return a not-found error for a missing ID", func() {
			retrieved, err := repo.GetByID(99999)
			Expect(retrieved).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAssignmentNotFound))
		})
	})

	Describe("FindActiveByOperator", func() {
		It("should return nil without error when the operator has no active assignment", func() {
			Expect(repo.Create(newAssignment(100, 400, assignment.StatusPending))).To(Succeed())

			found, err := repo.FindActiveByOperator(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("should find the active assignment among others", func() {
			Expect(repo.Create(newAssignment(100, 400, assignment.StatusEnded))).To(Succeed())
			active := newAssignment(100, 401, assignment.StatusActive)
			Expect(repo.Create(active)).To(Succeed())

			found, err := repo.FindActiveByOperator(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ID).To(Equal(active.ID))
		})
	})

	Describe("UpdateTransition", func() {
		It("should persist approval stamps", func() {
			a := newAssignment(100, 400, assignment.StatusPending)
			Expect(repo.Create(a)).To(Succeed())

			a.Approve(7)
			Expect(repo.UpdateTransition(a)).To(Succeed())

			retrieved, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(assignment.StatusActive))
			Expect(*retrieved.ApprovedBy).To(Equal(int64(7)))
			Expect(retrieved.ApprovedAt).NotTo(BeNil())
		})

		It("should persist a rejection reason", func() {
			a := newAssignment(100, 400, assignment.StatusPending)
			Expect(repo.Create(a)).To(Succeed())

			a.Reject(7, "post already covered")
			Expect(repo.UpdateTransition(a)).To(Succeed())

			retrieved, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Status).To(Equal(assignment.StatusRejected))
			Expect(*retrieved.RejectionReason).To(Equal("post already covered"))
		})
	})

	Describe("ListByStatus", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAssignment(100, 400, assignment.StatusPending))).To(Succeed())
			Expect(repo.Create(newAssignment(101, 401, assignment.StatusPending))).To(Succeed())
			Expect(repo.Create(newAssignment(102, 402, assignment.StatusActive))).To(Succeed())
		})

		It("should filter by status within the supervisor scope", func() {
			result, err := repo.ListByStatus(assignment.StatusPending, []int64{400}, false, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].SupervisorID).To(Equal(int64(400)))
		})

		It("should return everything for an unrestricted scope", func() {
			result, err := repo.ListByStatus(assignment.StatusPending, nil, true, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
		})

		It("should return an empty page for a restricted empty scope", func() {
			result, err := repo.ListByStatus(assignment.StatusPending, nil, false, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("InTransaction", func() {
		It("should commit the end-then-create pair together", func() {
			current := newAssignment(100, 400, assignment.StatusActive)
			Expect(repo.Create(current)).To(Succeed())

			replacement := newAssignment(100, 401, assignment.StatusActive)

			err := repo.InTransaction(func(tx assignment.Repository) error {
				current.End()
				if err := tx.UpdateTransition(current); err != nil {
					return err
				}
				return tx.Create(replacement)
			})
			Expect(err).NotTo(HaveOccurred())

			ended, err := repo.GetByID(current.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ended.Status).To(Equal(assignment.StatusEnded))

			active, err := repo.FindActiveByOperator(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(active.ID).To(Equal(replacement.ID))
		})

		It("should roll the end back when the replacement insert fails", func() {
			current := newAssignment(100, 400, assignment.StatusActive)
			Expect(repo.Create(current)).To(Succeed())

			err := repo.InTransaction(func(tx assignment.Repository) error {
				current.End()
				if err := tx.UpdateTransition(current); err != nil {
					return err
				}
				return errors.New("replacement validation failed")
			})
			Expect(err).To(HaveOccurred())

			still, err := repo.FindActiveByOperator(100)
			Expect(err).NotTo(HaveOccurred())
			Expect(still).NotTo(BeNil())
			Expect(still.ID).To(Equal(current.ID))
		})
	})
})
