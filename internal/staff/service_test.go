package staff_test

import (
	"context"
	"errors"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/staff"
	"github.com/vnphone/staff-portal/pkg/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Staff Service", func() {
	var (
		repo     *MockRepository
		recorder *MockRecorder
		service  *staff.Service
		ctx      context.Context
	)

	validDTO := func() staff.RegisterDTO {
		return staff.RegisterDTO{
			FirstName: " Somchai ",
			LastName:  "Jaidee",
			Nickname:  "ชาย",
			Email:     "  Somchai@Shop.CO ",
			Phone:     "0812345678",
			Company:   "siamchai",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		recorder = &MockRecorder{}
		service = staff.NewService(repo, recorder, logger.Discard())
	})

	Describe("Register", func() {
		It("should create a pending staff account with a normalized email", func() {
			created, err := service.Register(ctx, validDTO())

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Email).To(Equal("somchai@shop.co"))
			Expect(created.FirstName).To(Equal("Somchai"))
			Expect(created.Status).To(Equal(staff.StatusPending))
			Expect(created.Role).To(Equal(staff.RoleStaff))
		})

		It("should require every field", func() {
			dto := validDTO()
			dto.Nickname = "   "

			_, err := service.Register(ctx, dto)
			Expect(errors.Is(err, internal.ErrMissingFields)).To(BeTrue())
		})

		It("should reject an unknown company", func() {
			dto := validDTO()
			dto.Company = "acme"

			_, err := service.Register(ctx, dto)
			Expect(errors.Is(err, internal.ErrInvalidCompany)).To(BeTrue())
		})

		It("should reject a taken email before a taken phone", func() {
			repo.Add(&staff.Staff{Email: "somchai@shop.co", Phone: "0812345678"})

			_, err := service.Register(ctx, validDTO())
			Expect(errors.Is(err, internal.ErrEmailTaken)).To(BeTrue())
		})

		It("should reject a taken phone", func() {
			repo.Add(&staff.Staff{Email: "other@shop.co", Phone: "0812345678"})

			_, err := service.Register(ctx, validDTO())
			Expect(errors.Is(err, internal.ErrPhoneTaken)).To(BeTrue())
		})

		It("should map a racing duplicate insert to a conflict", func() {
			repo.SetCreateError(staff.ErrDuplicateAccount)

			_, err := service.Register(ctx, validDTO())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(409))
		})

		It("should report persistence failures generically", func() {
			repo.SetCreateError(errDatabase)

			_, err := service.Register(ctx, validDTO())
			Expect(errors.Is(err, internal.ErrRegistrationFailed)).To(BeTrue())
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("List", func() {
		It("should return staff newest first", func() {
			now := time.Now()
			repo.Add(&staff.Staff{Email: "old@shop.co", CreatedAt: now.Add(-time.Hour)})
			repo.Add(&staff.Staff{Email: "new@shop.co", CreatedAt: now})

			members, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(2))
			Expect(members[0].Email).To(Equal("new@shop.co"))
		})

		It("should hide repository failures", func() {
			repo.SetShouldFail(true, errDatabase)

			_, err := service.List(ctx)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal(internal.MsgGenericFailure))
		})
	})

	Describe("Update", func() {
		var pending *staff.Staff

		BeforeEach(func() {
			pending = repo.Add(&staff.Staff{
				Email: "pending@shop.co", Phone: "0800000000",
				Role: staff.RoleStaff, Status: staff.StatusPending,
			})
		})

		It("should approve an account and remember who approved it", func() {
			updated, err := service.Update(ctx, "admin-1", pending.ID, staff.UpdateStaffDTO{Status: strPtr("active")})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(staff.StatusActive))
			Expect(updated.ApprovedBy).NotTo(BeNil())
			Expect(*updated.ApprovedBy).To(Equal("admin-1"))
		})

		It("should record the change against the admin", func() {
			_, err := service.Update(ctx, "admin-1", pending.ID, staff.UpdateStaffDTO{Status: strPtr("inactive")})
			Expect(err).NotTo(HaveOccurred())

			Expect(recorder.Records).To(HaveLen(1))
			call := recorder.Records[0]
			Expect(call.StaffID).To(Equal("admin-1"))
			Expect(call.Action).To(Equal(activity.ActionAdminUpdateStaff))
			Expect(call.Details).To(HaveKeyWithValue("target_staff_id", pending.ID))
			Expect(call.Details).To(HaveKey("updates"))
		})

		It("should not set approved_by when deactivating", func() {
			_, err := service.Update(ctx, "admin-1", pending.ID, staff.UpdateStaffDTO{Status: strPtr("inactive")})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.LastUpdates()).NotTo(HaveKey("approved_by"))
		})

		It("should allow a role change together with activation", func() {
			updated, err := service.Update(ctx, "admin-1", pending.ID, staff.UpdateStaffDTO{
				Status: strPtr("active"),
				Role:   strPtr("admin"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(staff.RoleAdmin))
		})

		It("should refuse a role change on an account that stays pending", func() {
			_, err := service.Update(ctx, "admin-1", pending.ID, staff.UpdateStaffDTO{Role: strPtr("admin")})
			Expect(errors.Is(err, internal.ErrRoleNeedsActive)).To(BeTrue())
			Expect(recorder.Records).To(BeEmpty())
		})

		DescribeTable("input validation",
			func(dto staff.UpdateStaffDTO, expected *internal.AppError) {
				_, err := service.Update(ctx, "admin-1", pending.ID, dto)
				Expect(errors.Is(err, expected)).To(BeTrue())
			},
			Entry("nothing to update", staff.UpdateStaffDTO{}, internal.ErrNothingToUpdate),
			Entry("unknown status", staff.UpdateStaffDTO{Status: strPtr("banned")}, internal.ErrInvalidStatus),
			Entry("unknown role", staff.UpdateStaffDTO{Role: strPtr("owner")}, internal.ErrInvalidRole),
		)

		It("should report unknown staff", func() {
			_, err := service.Update(ctx, "admin-1", "missing", staff.UpdateStaffDTO{Status: strPtr("active")})
			Expect(errors.Is(err, internal.ErrStaffNotFound)).To(BeTrue())
		})
	})

	Describe("Overview", func() {
		It("should count accounts by status", func() {
			repo.Add(&staff.Staff{Status: staff.StatusPending})
			repo.Add(&staff.Staff{Status: staff.StatusPending})
			repo.Add(&staff.Staff{Status: staff.StatusActive})
			repo.Add(&staff.Staff{Status: staff.StatusInactive})

			o, err := service.Overview(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(*o).To(Equal(staff.Overview{Pending: 2, Active: 1, Inactive: 1, Total: 4}))
		})
	})
})
