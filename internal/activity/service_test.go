package activity_test

import (
	"context"
	"errors"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/core/events"
	"github.com/vnphone/staff-portal/pkg/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Activity Service", func() {
	var (
		repo     *MockRepository
		recorder *MockRecorder
		service  *activity.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = NewMockRepository()
		recorder = &MockRecorder{}
		service = activity.NewService(repo, recorder, logger.Discard())
	})

	Describe("List", func() {
		DescribeTable("limit handling",
			func(requested, expected int) {
				_, err := service.List(ctx, requested)
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.LastLimit()).To(Equal(expected))
			},
			Entry("default", 0, activity.DefaultListLimit),
			Entry("negative", -5, activity.DefaultListLimit),
			Entry("within range", 10, 10),
			Entry("capped", 5000, activity.MaxListLimit),
		)

		It("should return an empty list rather than nil", func() {
			entries, err := service.List(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).NotTo(BeNil())
			Expect(entries).To(BeEmpty())
		})

		It("should hide repository failures behind an internal error", func() {
			repo.SetShouldFail(true, errDatabase)

			_, err := service.List(ctx, 10)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(errors.Is(err, errDatabase)).To(BeTrue())
		})
	})

	Describe("Append", func() {
		It("should record known actions", func() {
			// Given
			dto := activity.AppendDTO{Action: "view_product", Details: map[string]interface{}{"model": "IPHONE 15"}}

			// When
			err := service.Append(ctx, "staff-1", dto)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.Records).To(HaveLen(1))
			Expect(recorder.Records[0].Action).To(Equal(activity.ActionViewProduct))
			Expect(recorder.Records[0].StaffID).To(Equal("staff-1"))
		})

		It("should reject actions outside the vocabulary", func() {
			err := service.Append(ctx, "staff-1", activity.AppendDTO{Action: "delete_everything"})

			Expect(errors.Is(err, internal.ErrInvalidAction)).To(BeTrue())
			Expect(recorder.Records).To(BeEmpty())
		})
	})
})

var _ = Describe("Activity Recorder", func() {
	var (
		repo     *MockRepository
		bus      *events.EventBus
		recorder *activity.Recorder
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		bus = events.NewEventBus(logger.Discard())
		recorder = activity.NewRecorder(bus, repo, logger.Discard())
	})

	It("should write entries in the background", func() {
		recorder.Record(context.Background(), "staff-1", activity.ActionLogin, map[string]interface{}{"method": "phone"})

		Eventually(repo.Logs).Should(HaveLen(1))
		log := repo.Logs()[0]
		Expect(log.StaffID).To(Equal("staff-1"))
		Expect(log.Action).To(Equal("login"))
		Expect(log.Details).To(HaveKeyWithValue("method", "phone"))
	})

	It("should survive a cancelled request context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		recorder.Record(ctx, "staff-1", activity.ActionViewDashboard, nil)

		Eventually(repo.Logs).Should(HaveLen(1))
	})

	It("should never surface write failures", func() {
		repo.SetShouldFail(true, errDatabase)

		Expect(func() {
			recorder.Record(context.Background(), "staff-1", activity.ActionLogin, nil)
		}).NotTo(Panic())

		waitCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(bus.Wait(waitCtx)).To(Succeed())
		Expect(repo.Logs()).To(BeEmpty())
	})

	It("should drop entries without a staff id or with an unknown action", func() {
		recorder.Record(context.Background(), "", activity.ActionLogin, nil)
		recorder.Record(context.Background(), "staff-1", activity.Action("hack"), nil)

		Expect(bus.Wait(context.Background())).To(Succeed())
		Expect(repo.Logs()).To(BeEmpty())
	})
})
